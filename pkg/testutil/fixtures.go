package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixed UUIDs for deterministic testing
var (
	TestTenantID   = uuid.MustParse("00000000-0000-0000-0000-000000000010").String()
	TestBorrowerID = uuid.MustParse("00000000-0000-0000-0000-000000000020").String()
	TestLoanID     = uuid.MustParse("00000000-0000-0000-0000-000000000030").String()
)

// Standard loan terms used across tests: 3000 at 40% over 14 weeks.
var (
	TestRequestedAmount = decimal.NewFromInt(3000)
	TestRate            = decimal.NewFromFloat(0.40)
	TestWeekDuration    = 14
)
