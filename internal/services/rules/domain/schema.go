// Package domain holds the banking schema names, setting names and rule results
package domain

// Transaction entity and fields
const (
	TransactionEntity     = "bkg_transaction"
	TransactionAmount     = "bkg_amount"
	TransactionCurrency   = "bkg_currency"
	TransactionCustomer   = "bkg_customerid"
	TransactionFraudScore = "bkg_fraudscore"
	TransactionIsFraud    = "bkg_isfraudrisk"
)

// Customer entity and fields
const (
	CustomerEntity          = "account"
	CustomerKyc             = "bkg_kycstatus"
	CustomerCreditLimit     = "bkg_creditlimit"
	CustomerCurrentExposure = "bkg_currentexposure"
	CustomerCreditScore     = "bkg_creditscore"
	CustomerMonthlyIncome   = "bkg_monthlyincome"
)

// KycPassed is the only KYC option value that authorises transactions
const KycPassed int64 = 100000000

// Setting names resolved through the settings chain
const (
	SettingAllowedCurrencies = "pp_AllowedCurrencies"
	SettingMinCreditScore    = "pp_MinCreditScore"
	SettingMaxDebtToIncome   = "pp_MaxDebtToIncome"
	SettingFraudAPIURL       = "pp_FraudApiUrl"
	SettingFraudAPIKey       = "pp_FraudApiKey"

	settingStaticFxPrefix = "pp_StaticFx_"
)

// StaticFxSetting names the pair rate setting, e.g. pp_StaticFx_USD_EUR
func StaticFxSetting(base, counter string) string {
	return settingStaticFxPrefix + base + "_" + counter
}

// DefaultCurrencies are always allowed, compared case-insensitively
var DefaultCurrencies = []string{"USD", "EUR", "GBP", "INR"}

// CurrencyDelimiters separate entries of the allowed-currencies setting
const CurrencyDelimiters = ",;|"
