// Package policy holds the pure access-control and redaction rules shared
// by every service: who may read or write each configuration namespace, who
// may mutate an owned resource, and which configuration values are secret.
package policy
