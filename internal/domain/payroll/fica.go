package payroll

// ficaExempt reports whether Social Security and Medicare rules are skipped
// for this basis. Household and election workers owe FICA only once their
// annual wages reach the statutory threshold.
func ficaExempt(in PaycheckInput, basis TaxBasis, currentCents int64) bool {
	if !basis.isFica() {
		return false
	}
	if in.Employee.FicaExempt {
		return true
	}
	var threshold int64
	switch in.Employee.EmploymentType {
	case EmploymentHousehold:
		threshold = householdFicaThresholdCents
	case EmploymentElectionWorker:
		threshold = electionWorkerFicaThresholdCents
	default:
		return false
	}
	return in.PriorYtd.wages(basis)+currentCents < threshold
}
