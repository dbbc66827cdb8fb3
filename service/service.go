package service

import (
	"time"

	"abinterior/repository"

	"github.com/google/uuid"
)

// LedgerService validates every mutation before it reaches a repository and attaches
// computed summaries on the way out.
type LedgerService struct {
	Customers  repository.CustomerRepository
	Labours    repository.LabourRepository
	Summarizer Summarizer

	Now   func() time.Time
	NewID func() string
}

func NewLedgerService(customers repository.CustomerRepository, labours repository.LabourRepository, summarizer Summarizer) *LedgerService {
	return &LedgerService{
		Customers:  customers,
		Labours:    labours,
		Summarizer: summarizer,
		Now:        func() time.Time { return time.Now().UTC() },
		NewID:      uuid.NewString,
	}
}
