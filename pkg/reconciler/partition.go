package reconciler

import "github.com/agentstation/contactmerge/pkg/contacts"

// Partition splits records by the emergency relief flag, keeping order.
func Partition(records []contacts.Contact) (er, other []contacts.Contact) {
	er = []contacts.Contact{}
	other = []contacts.Contact{}
	for _, c := range records {
		if c.EmergencyRelief() {
			er = append(er, c)
		} else {
			other = append(other, c)
		}
	}
	return er, other
}
