package enums

import "fmt"

// PromotionMessageType classifies the messages produced while validating a cart.
type PromotionMessageType string

const (
	PromotionMessageTypeError   PromotionMessageType = "error"
	PromotionMessageTypeWarning PromotionMessageType = "warning"
	PromotionMessageTypeInfo    PromotionMessageType = "info"
	PromotionMessageTypeSuccess PromotionMessageType = "success"
)

var validPromotionMessageTypes = []PromotionMessageType{
	PromotionMessageTypeError,
	PromotionMessageTypeWarning,
	PromotionMessageTypeInfo,
	PromotionMessageTypeSuccess,
}

// String implements fmt.Stringer.
func (p PromotionMessageType) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PromotionMessageType) IsValid() bool {
	for _, candidate := range validPromotionMessageTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionMessageType converts raw input into a PromotionMessageType.
func ParsePromotionMessageType(value string) (PromotionMessageType, error) {
	for _, candidate := range validPromotionMessageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion message type %q", value)
}
