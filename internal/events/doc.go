// Package events provides a small publish/subscribe layer for task
// lifecycle changes. The service publishes an event after every successful
// mutation; handlers such as AuditLogHandler react to them without the
// service knowing who is listening.
package events
