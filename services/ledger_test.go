package services

import (
	"testing"

	"hostelhub-server/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeLedgerTotals(t *testing.T) {
	booking := &models.Booking{
		TotalAmount:     dec("50000"),
		SecurityDeposit: dec("20000"),
		Payments: []models.Payment{
			{Status: models.PaymentPaid, Amount: dec("50000")},
			{Status: models.PaymentPending, Amount: dec("10000")},
			{Status: models.PaymentRejected, Amount: dec("5000")},
		},
	}

	totals := ComputeLedgerTotals(booking)

	if !totals.TotalLiability.Equal(dec("70000")) {
		t.Errorf("total liability = %s, want 70000", totals.TotalLiability)
	}
	if !totals.SettledFunds.Equal(dec("50000")) {
		t.Errorf("settled = %s, want 50000 (only PAID counts)", totals.SettledFunds)
	}
	if !totals.Residual.Equal(dec("20000")) {
		t.Errorf("residual = %s, want 20000", totals.Residual)
	}
	if totals.CompletionRate != 71 {
		t.Errorf("completion rate = %d, want 71", totals.CompletionRate)
	}
}

func TestComputeLedgerTotalsZeroLiability(t *testing.T) {
	booking := &models.Booking{
		TotalAmount:     decimal.Zero,
		SecurityDeposit: decimal.Zero,
		Payments: []models.Payment{
			{Status: models.PaymentPaid, Amount: dec("1000")},
		},
	}

	totals := ComputeLedgerTotals(booking)

	if totals.CompletionRate != 0 {
		t.Errorf("completion rate = %d, want 0 when liability is zero", totals.CompletionRate)
	}
	if !totals.Residual.Equal(decimal.Zero) {
		t.Errorf("residual = %s, want 0", totals.Residual)
	}
}

func TestComputeLedgerTotalsOverpaid(t *testing.T) {
	booking := &models.Booking{
		TotalAmount:     dec("10000"),
		SecurityDeposit: decimal.Zero,
		Payments: []models.Payment{
			{Status: models.PaymentPaid, Amount: dec("12000")},
		},
	}

	totals := ComputeLedgerTotals(booking)

	if !totals.Residual.Equal(decimal.Zero) {
		t.Errorf("residual = %s, want clamped to 0", totals.Residual)
	}
	if totals.CompletionRate != 120 {
		t.Errorf("completion rate = %d, want 120 (not capped)", totals.CompletionRate)
	}
}

func TestDetectDuplicateRentEntry(t *testing.T) {
	existing := []models.Payment{
		{Type: models.PaymentTypeRent, Month: "January", Year: 2025, Status: models.PaymentPaid, Method: models.MethodCash},
		{Type: models.PaymentTypeRent, Month: "February", Year: 2025, Status: models.PaymentPending},
		{Type: models.PaymentTypeDeposit, Month: "March", Year: 2025, Status: models.PaymentPaid},
	}

	// Same period, different method: still a duplicate
	dup := DetectDuplicateRentEntry(existing, RentCandidate{Type: models.PaymentTypeMonthlyRent, Month: "January", Year: 2025})
	if dup == nil {
		t.Fatal("expected duplicate for January 2025")
	}
	if dup.Month != "January" {
		t.Errorf("duplicate month = %s, want January", dup.Month)
	}

	// Different year: clean
	if d := DetectDuplicateRentEntry(existing, RentCandidate{Type: models.PaymentTypeRent, Month: "January", Year: 2026}); d != nil {
		t.Errorf("unexpected duplicate for January 2026: %+v", d)
	}

	// PENDING prior payment still blocks the period
	if d := DetectDuplicateRentEntry(existing, RentCandidate{Type: models.PaymentTypeRent, Month: "February", Year: 2025}); d == nil {
		t.Error("expected duplicate for February 2025 against a PENDING payment")
	}

	// Deposits never participate in the rent duplicate check
	if d := DetectDuplicateRentEntry(existing, RentCandidate{Type: models.PaymentTypeDeposit, Month: "March", Year: 2025}); d != nil {
		t.Error("deposit candidate should not trigger the duplicate check")
	}
}

func TestDetectDuplicateRentEntryIgnoresInactive(t *testing.T) {
	for _, status := range []string{models.PaymentRejected, models.PaymentFailed, models.PaymentRefunded} {
		existing := []models.Payment{
			{Type: models.PaymentTypeRent, Month: "January", Year: 2025, Status: status},
		}
		if d := DetectDuplicateRentEntry(existing, RentCandidate{Type: models.PaymentTypeRent, Month: "January", Year: 2025}); d != nil {
			t.Errorf("status %s should not count as a duplicate", status)
		}
	}
}

func TestDedupeIDs(t *testing.T) {
	got := dedupeIDs([]uint{3, 1, 3, 2, 1})
	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("dedupeIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dedupeIDs = %v, want %v", got, want)
		}
	}

	if got := dedupeIDs(nil); len(got) != 0 {
		t.Errorf("dedupeIDs(nil) = %v, want empty", got)
	}
}

func TestCanTransitionPayment(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.PaymentPending, models.PaymentPaid, true},
		{models.PaymentPending, models.PaymentRejected, true},
		{models.PaymentPartial, models.PaymentPaid, true},
		{models.PaymentOverdue, models.PaymentPaid, true},
		{models.PaymentOverdue, models.PaymentRejected, true},
		{models.PaymentPaid, models.PaymentRejected, false},
		{models.PaymentPaid, models.PaymentPaid, false},
		{models.PaymentRejected, models.PaymentPaid, false},
		{models.PaymentRefunded, models.PaymentPaid, false},
		{models.PaymentPending, models.PaymentOverdue, false},
	}
	for _, c := range cases {
		if got := CanTransitionPayment(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionPayment(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
