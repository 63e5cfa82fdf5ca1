// Package naming converts schema keys and definition names into Go identifiers.
//
// Property keys such as "pull_secrets", "run-as" or "runAs" become exported
// field names ("PullSecrets", "RunAs", "RunAs"). Definition names are run
// through the same conversion so that a name that is already PascalCase is
// returned unchanged. The conversion is deterministic: the same input always
// yields the same identifier.
package naming
