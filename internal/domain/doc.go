// Package domain contains the core business entities (users and the tasks
// they own), their validation rules, and the domain errors. It is independent
// of any specific infrastructure or delivery mechanism.
package domain
