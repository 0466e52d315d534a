package normalize

// The directory returns token payloads under two naming conventions: the
// management database's snake_case schema and the TSP gateway's camelCase
// schema. This table is the only place both spellings appear; everything
// downstream speaks the canonical (snake_case) names.

// convention identifies which naming scheme a raw field belongs to.
type convention int

const (
	convSnake convention = iota
	convCamel
)

// Canonical field names.
const (
	fieldInternalID      = "id"
	fieldReferenceID     = "token_reference_id"
	fieldRequestorID     = "token_requestor_id"
	fieldValue           = "token_value"
	fieldType            = "token_type"
	fieldTypeDisplay     = "type_display"
	fieldStatus          = "token_status"
	fieldStatusDisplay   = "status_display"
	fieldAssurance       = "token_assurance_method"
	fieldActivationDate  = "activation_date"
	fieldExpirationDate  = "expiration_date"
	fieldLastUpdate      = "last_status_update"
	fieldCreationDate    = "creation_date"
	fieldTSP             = "tsp"
	fieldRequestorName   = "token_requestor_name"
	fieldPANSource       = "pan_source"
	fieldDeviceID        = "device_id"
	fieldDeviceType      = "device_type"
	fieldDeviceName      = "device_name"
	fieldDeviceNumber    = "device_number"
	fieldWalletAcctScore = "wallet_account_score"
	fieldWalletDevScore  = "wallet_device_score"
	fieldWalletReasons   = "wallet_reason_codes"
	fieldNetworkScore    = "network_token_score"
	fieldNetworkDecision = "network_decisioning"
	fieldRiskScore       = "risk_assessment_score"
	fieldExpMonth        = "expiration_month"
	fieldExpYear         = "expiration_year"
	fieldDeleted         = "is_deleted"
	fieldDeletedAt       = "deleted_at"
)

type alias struct {
	canonical string
	conv      convention
}

// aliasTable maps every recognized raw field name onto its canonical name.
// Canonical names map to themselves so normalization is idempotent.
var aliasTable = map[string]alias{
	// internal identifier
	"id":               {fieldInternalID, convSnake},
	"token_id":         {fieldInternalID, convSnake},
	"internalTokenRef": {fieldInternalID, convCamel},

	// external reference identifier
	"token_reference_id": {fieldReferenceID, convSnake},
	"tsp_token_ref":      {fieldReferenceID, convSnake},
	"tokenReferenceID":   {fieldReferenceID, convCamel},
	"tspTokenRef":        {fieldReferenceID, convCamel},

	// external requestor identifier
	"token_requestor_id": {fieldRequestorID, convSnake},
	"tokenRequestorID":   {fieldRequestorID, convCamel},
	"tokenRequestorId":   {fieldRequestorID, convCamel},

	"token_value": {fieldValue, convSnake},
	"tokenValue":  {fieldValue, convCamel},

	"token_type": {fieldType, convSnake},
	"tokenType":  {fieldType, convCamel},

	"type_display": {fieldTypeDisplay, convSnake},
	"typeDisplay":  {fieldTypeDisplay, convCamel},

	"token_status": {fieldStatus, convSnake},
	"tokenStatus":  {fieldStatus, convCamel},
	"status":       {fieldStatus, convCamel},

	"status_display": {fieldStatusDisplay, convSnake},
	"statusDisplay":  {fieldStatusDisplay, convCamel},

	"token_assurance_method": {fieldAssurance, convSnake},
	"tokenAssuranceMethod":   {fieldAssurance, convCamel},

	"activation_date":     {fieldActivationDate, convSnake},
	"tokenActivationDate": {fieldActivationDate, convCamel},

	"expiration_date":     {fieldExpirationDate, convSnake},
	"tokenExpirationDate": {fieldExpirationDate, convCamel},

	"last_status_update":         {fieldLastUpdate, convSnake},
	"lastTokenStatusUpdatedTime": {fieldLastUpdate, convCamel},

	"creation_date": {fieldCreationDate, convSnake},
	"creationDate":  {fieldCreationDate, convCamel},

	"tsp": {fieldTSP, convSnake},

	"token_requestor_name": {fieldRequestorName, convSnake},
	"tokenRequestor":       {fieldRequestorName, convCamel},
	"tokenRequestorName":   {fieldRequestorName, convCamel},

	"pan_source": {fieldPANSource, convSnake},
	"panSource":  {fieldPANSource, convCamel},

	"device_id":     {fieldDeviceID, convSnake},
	"deviceID":      {fieldDeviceID, convCamel},
	"device_type":   {fieldDeviceType, convSnake},
	"deviceType":    {fieldDeviceType, convCamel},
	"device_name":   {fieldDeviceName, convSnake},
	"deviceName":    {fieldDeviceName, convCamel},
	"device_number": {fieldDeviceNumber, convSnake},
	"deviceNumber":  {fieldDeviceNumber, convCamel},

	"wallet_account_score": {fieldWalletAcctScore, convSnake},
	"walletAccountScore":   {fieldWalletAcctScore, convCamel},
	"wallet_device_score":  {fieldWalletDevScore, convSnake},
	"walletDeviceScore":    {fieldWalletDevScore, convCamel},
	"wallet_reason_codes":  {fieldWalletReasons, convSnake},
	"walletReasonCodes":    {fieldWalletReasons, convCamel},

	"network_token_score": {fieldNetworkScore, convSnake},
	"visa_token_score":    {fieldNetworkScore, convSnake},
	"tokenScore":          {fieldNetworkScore, convCamel},

	"network_decisioning": {fieldNetworkDecision, convSnake},
	"visa_decisioning":    {fieldNetworkDecision, convSnake},
	"decision":            {fieldNetworkDecision, convCamel},

	"risk_assessment_score": {fieldRiskScore, convSnake},
	"riskAssessmentScore":   {fieldRiskScore, convCamel},

	"expiration_month": {fieldExpMonth, convSnake},
	"expiryMonth":      {fieldExpMonth, convCamel},
	"expiration_year":  {fieldExpYear, convSnake},
	"expiryYear":       {fieldExpYear, convCamel},

	"is_deleted": {fieldDeleted, convSnake},
	"isDeleted":  {fieldDeleted, convCamel},
	"deleted_at": {fieldDeletedAt, convSnake},
	"deletedAt":  {fieldDeletedAt, convCamel},
}
