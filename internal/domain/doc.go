// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/task, domain/label), the
// message vocabulary in domain/command and domain/event, and the task creation
// workflow in domain/workflow. This root package holds sentinel errors and the
// typed validation and rejection errors shared by all of them.
package domain
