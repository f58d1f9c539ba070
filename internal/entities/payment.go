package entities

type PaymentType string

const (
	PaymentInstallationFee PaymentType = "installation_fee"
	PaymentServiceCharge   PaymentType = "service_charge"
)

// ApprovalPaymentTypes are accepted as proof of payment when approving a bin request.
var ApprovalPaymentTypes = []PaymentType{PaymentInstallationFee, PaymentServiceCharge}

func (t PaymentType) String() string {
	return string(t)
}
