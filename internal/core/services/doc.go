// Package services contains the core business logic, wired together from
// the driven ports and exposed through the driving ports. Services hold no
// adapter-specific code: everything external comes in through an interface.
package services
