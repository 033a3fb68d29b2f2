/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddbitem

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// decodeAttribute converts one DynamoDB-JSON typed value, e.g.
// {"S":"abc"} or {"M":{"a":{"N":"1"}}}, into an AttributeValue.
func decodeAttribute(raw json.RawMessage) (types.AttributeValue, error) {
	var typed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, err
	}
	if len(typed) != 1 {
		return nil, fmt.Errorf("expected exactly one type tag, got %d", len(typed))
	}

	for tag, val := range typed {
		switch tag {
		case "S":
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberS{Value: s}, nil
		case "N":
			var n string
			if err := json.Unmarshal(val, &n); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberN{Value: n}, nil
		case "BOOL":
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberBOOL{Value: b}, nil
		case "NULL":
			return &types.AttributeValueMemberNULL{Value: true}, nil
		case "B":
			var b []byte
			if err := json.Unmarshal(val, &b); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberB{Value: b}, nil
		case "SS":
			var ss []string
			if err := json.Unmarshal(val, &ss); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberSS{Value: ss}, nil
		case "NS":
			var ns []string
			if err := json.Unmarshal(val, &ns); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberNS{Value: ns}, nil
		case "BS":
			var bs [][]byte
			if err := json.Unmarshal(val, &bs); err != nil {
				return nil, err
			}
			return &types.AttributeValueMemberBS{Value: bs}, nil
		case "L":
			var elems []json.RawMessage
			if err := json.Unmarshal(val, &elems); err != nil {
				return nil, err
			}
			list := make([]types.AttributeValue, 0, len(elems))
			for _, elem := range elems {
				av, err := decodeAttribute(elem)
				if err != nil {
					return nil, err
				}
				list = append(list, av)
			}
			return &types.AttributeValueMemberL{Value: list}, nil
		case "M":
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(val, &fields); err != nil {
				return nil, err
			}
			m := make(map[string]types.AttributeValue, len(fields))
			for name, field := range fields {
				av, err := decodeAttribute(field)
				if err != nil {
					return nil, err
				}
				m[name] = av
			}
			return &types.AttributeValueMemberM{Value: m}, nil
		default:
			return nil, fmt.Errorf("unsupported type tag %q", tag)
		}
	}
	return nil, fmt.Errorf("empty attribute")
}

// encodeAttribute converts an AttributeValue to its DynamoDB-JSON typed form.
func encodeAttribute(av types.AttributeValue) (json.RawMessage, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return tag("S", v.Value)
	case *types.AttributeValueMemberN:
		return tag("N", v.Value)
	case *types.AttributeValueMemberBOOL:
		return tag("BOOL", v.Value)
	case *types.AttributeValueMemberNULL:
		return tag("NULL", true)
	case *types.AttributeValueMemberB:
		return tag("B", v.Value)
	case *types.AttributeValueMemberSS:
		return tag("SS", v.Value)
	case *types.AttributeValueMemberNS:
		return tag("NS", v.Value)
	case *types.AttributeValueMemberBS:
		return tag("BS", v.Value)
	case *types.AttributeValueMemberL:
		elems := make([]json.RawMessage, 0, len(v.Value))
		for _, elem := range v.Value {
			encoded, err := encodeAttribute(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, encoded)
		}
		return tag("L", elems)
	case *types.AttributeValueMemberM:
		fields := make(map[string]json.RawMessage, len(v.Value))
		for name, field := range v.Value {
			encoded, err := encodeAttribute(field)
			if err != nil {
				return nil, err
			}
			fields[name] = encoded
		}
		return tag("M", fields)
	default:
		return nil, fmt.Errorf("unsupported attribute value %T", av)
	}
}

func tag(name string, value any) (json.RawMessage, error) {
	return json.Marshal(map[string]any{name: value})
}
