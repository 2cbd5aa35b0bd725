package models

type ParticipantKind string

const (
	KindCustomer ParticipantKind = "customer"
	KindMerchant ParticipantKind = "merchant"
)

// Participant is the counterparty of a transaction: either a Customer or a
// Merchant. Participants are compared by id only.
type Participant interface {
	ParticipantID() string
	DisplayName() string
	Kind() ParticipantKind
	participant()
}

func (c Customer) ParticipantID() string { return c.ID }
func (c Customer) DisplayName() string   { return c.Name }
func (c Customer) Kind() ParticipantKind { return KindCustomer }
func (Customer) participant()            {}

func (m Merchant) ParticipantID() string { return m.ID }
func (m Merchant) DisplayName() string   { return m.Name }
func (m Merchant) Kind() ParticipantKind { return KindMerchant }
func (Merchant) participant()            {}
