package imperial

// Pre-parameter names.
const (
	keyTriggerDay                = "Day of year trigger is reached"
	keyAccumulateDays            = "Number of days to accummulate cases/deaths before alert"
	keyDeathsBeforeAlert         = "Number of deaths accummulated before alert"
	keyTriggerOnDeaths           = "Trigger alert on deaths"
	keyInterventionsStartDay     = "Day of year interventions start"
	keyAlertAfterInterventions   = "Alert trigger starts after interventions"
	keyTreatmentTriggerIncidence = "Treatment trigger incidence per cell"
)

// Parameter names.
const (
	keyVaryEfficacies = "Vary efficacies over time"

	keyCaseIsolationChangeCount       = "Number of change times for levels of case isolation"
	keyHouseholdQuarantineChangeCount = "Number of change times for levels of household quarantine"
	keySocialDistancingChangeCount    = "Number of change times for levels of social distancing"
	keyPlaceClosureChangeCount        = "Number of change times for levels of place closure"

	keyCaseIsolationChangeTimes       = "Change times for levels of case isolation"
	keyHouseholdQuarantineChangeTimes = "Change times for levels of household quarantine"
	keySocialDistancingChangeTimes    = "Change times for levels of social distancing"
	keyPlaceClosureChangeTimes        = "Change times for levels of place closure"

	keyCaseIsolationStart      = "Case isolation start time"
	keyCaseIsolationDuration   = "Duration of case isolation policy"
	keyCaseIsolationProportion = "Proportion of detected cases isolated over time"

	keyHouseholdQuarantineStart      = "Household quarantine start time"
	keyHouseholdQuarantineDuration   = "Duration of household quarantine policy"
	keyHouseholdQuarantineCompliance = "Household level compliance with quarantine over time"

	keySocialDistancingStart    = "Social distancing start time"
	keySocialDistancingDuration = "Duration of social distancing"
	keySocialDistancingContacts = "Relative spatial contact rates over time given social distancing"

	keyPlaceClosureStart            = "Place closure start time"
	keyPlaceClosureDuration         = "Duration of place closure"
	keyPlaceClosureDurationOverTime = "Duration of place closure over time"
	keyPlacesOpenAfterClosure       = "Proportion of places remaining open after closure by place type over time"
)

// Administrative units parameter names.
const (
	keyIncludeHolidays        = "Include holidays"
	keyFixPopulationSize      = "Fix population size at specified value"
	keyCountriesToInclude     = "Number of countries to include"
	keyAdminUnitsToInclude    = "Number of level 1 administrative units to include"
	keyAdminUnitsList         = "List of level 1 administrative units to include"
	keyDetectedCasesThreshold = "Number of detected cases needed before outbreak alert triggered"
	keyAdminUnitCodes         = "Codes and country/province names for admin units"
)

// legacyTimeVaryingKeys are time-varying efficacies the compiler does not override. The
// templates define them with a default number of periods that must match the schedule.
var legacyTimeVaryingKeys = []string{
	"Relative household contact rates over time after place closure",
	"Relative spatial contact rates over time after place closure",
	"Relative household contact rates over time after quarantine",
	"Residual place contacts over time after household quarantine by place type",
	"Residual spatial contacts over time after household quarantine",
	"Household level compliance with quarantine over time",
	"Individual level compliance with quarantine over time",
	"Residual contacts after case isolation over time",
	"Residual household contacts after case isolation over time",
	"Proportion of detected cases isolated over time",
	"Relative place contact rates over time given social distancing by place type",
	"Relative household contact rates over time given social distancing",
	"Relative spatial contact rates over time given social distancing",
}

// unsupportedFamilies name parameter families that are zeroed out:
// adaptive triggers, deprecated "after change" values, incidence thresholds and the
// shielding of vulnerable people ("enhanced").
var unsupportedFamilies = []string{
	"trigger incidence",
	"after change",
	"incidence threshold",
	"enhanced",
}

const (
	// accumulateWindowDays disables the alert accumulation window.
	accumulateWindowDays = 1000
	// policyDuration keeps a policy in place for the rest of the simulation.
	policyDuration = 10000
)
