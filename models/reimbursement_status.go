package models

type ReimbursementStatus string

const (
	ReimbursementPending  ReimbursementStatus = "PENDING"
	ReimbursementApproved ReimbursementStatus = "APPROVED"
	ReimbursementRejected ReimbursementStatus = "REJECTED"
	ReimbursementPaid     ReimbursementStatus = "PAID"
)

var reimbursementTransitions = map[ReimbursementStatus][]ReimbursementStatus{
	ReimbursementPending:  {ReimbursementApproved, ReimbursementRejected},
	ReimbursementApproved: {ReimbursementPaid},
	ReimbursementRejected: {},
	ReimbursementPaid:     {},
}

func (s ReimbursementStatus) IsValid() bool {
	_, ok := reimbursementTransitions[s]
	return ok
}

func (s ReimbursementStatus) IsAllowChange(to ReimbursementStatus) bool {
	for _, next := range reimbursementTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s ReimbursementStatus) NextStatuses() []ReimbursementStatus {
	next := reimbursementTransitions[s]
	result := make([]ReimbursementStatus, len(next))
	copy(result, next)
	return result
}

func (s ReimbursementStatus) IsTerminal() bool {
	return s == ReimbursementRejected || s == ReimbursementPaid
}

type AttachmentKind string

const (
	AttachmentReceipt      AttachmentKind = "RECEIPT"
	AttachmentPaymentProof AttachmentKind = "PAYMENT_PROOF"
)
