// Package domain contains the core entities of the todo service: the stored
// Todo record, the NewTodo input shape and the Status filter type. It is
// independent of any specific storage or delivery mechanism.
package domain
