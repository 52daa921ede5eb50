// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port
// interfaces: the task creation workflow, the in-process entity dispatcher,
// the event processor feeding read models, and the read model queries.
package app
