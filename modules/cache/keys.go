package cache

import "fmt"

// Key conventions shared by the task-list and task services. Task mutations
// change their list's completion aggregate, so both services must invalidate
// the same keys.

// TaskListKey is the key for a single task-list detail view.
func TaskListKey(taskListID string) string {
	return "list:" + taskListID
}

// OwnerListsKey is the key for one page of an owner's task-list summaries.
func OwnerListsKey(ownerID string, skip, limit int) string {
	return fmt.Sprintf("owner:%s:%d:%d", ownerID, skip, limit)
}

// OwnerListsPattern matches every cached page of an owner's summaries.
func OwnerListsPattern(ownerID string) string {
	return "owner:" + ownerID + ":*"
}
