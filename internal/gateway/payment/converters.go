package payment

import (
	"google.golang.org/protobuf/types/known/structpb"
	"waste-service/internal/entities"
)

func toRequest(residentID string, types []entities.PaymentType) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(types))
	for _, t := range types {
		values = append(values, structpb.NewStringValue(t.String()))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"resident_id":   structpb.NewStringValue(residentID),
			"payment_types": structpb.NewListValue(&structpb.ListValue{Values: values}),
			"status":        structpb.NewStringValue("completed"),
		},
	}
}
