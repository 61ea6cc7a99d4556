/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package variant

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// FromProto converts a google.protobuf.Value. A nil message or a message
// with no kind set is null.
func FromProto(pv *structpb.Value) Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		return Number(k.NumberValue)
	case *structpb.Value_StringValue:
		return String(k.StringValue)
	case *structpb.Value_ListValue:
		return FromProtoList(k.ListValue)
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		m := make(map[string]Value, len(fields))
		for name, f := range fields {
			m[name] = FromProto(f)
		}
		return Value{kind: KindObject, obj: m}
	default:
		return Null()
	}
}

// FromProtoList converts a google.protobuf.ListValue into an array. A nil
// list is an empty array.
func FromProtoList(lv *structpb.ListValue) Value {
	vals := lv.GetValues()
	arr := make([]Value, len(vals))
	for i, e := range vals {
		arr[i] = FromProto(e)
	}
	return Value{kind: KindArray, arr: arr}
}

// ToProto converts v into a google.protobuf.Value. Non-finite numbers are
// rejected because protobuf JSON cannot carry them.
func (v Value) ToProto() (*structpb.Value, error) {
	switch v.kind {
	case KindNull:
		return structpb.NewNullValue(), nil
	case KindBool:
		return structpb.NewBoolValue(v.b), nil
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("variant: non-finite number %v", v.n)
		}
		return structpb.NewNumberValue(v.n), nil
	case KindString:
		return structpb.NewStringValue(v.s), nil
	case KindArray:
		lv, err := v.ToProtoList()
		if err != nil {
			return nil, err
		}
		return structpb.NewListValue(lv), nil
	case KindObject:
		fields := make(map[string]*structpb.Value, len(v.obj))
		for name, f := range v.obj {
			pf, err := f.ToProto()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = pf
		}
		return structpb.NewStructValue(&structpb.Struct{Fields: fields}), nil
	default:
		return nil, fmt.Errorf("variant: unknown %s", v.kind)
	}
}

// ToProtoList converts an array into a google.protobuf.ListValue.
func (v Value) ToProtoList() (*structpb.ListValue, error) {
	if v.kind != KindArray {
		return nil, &KindError{Want: KindArray, Got: v.kind}
	}
	lv := &structpb.ListValue{Values: make([]*structpb.Value, len(v.arr))}
	for i, e := range v.arr {
		pe, err := e.ToProto()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		lv.Values[i] = pe
	}
	return lv, nil
}

// ParseJSON decodes one JSON document.
func ParseJSON(data []byte) (Value, error) {
	var pv structpb.Value
	if err := protojson.Unmarshal(data, &pv); err != nil {
		return Value{}, fmt.Errorf("variant: parse json: %w", err)
	}
	return FromProto(&pv), nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	pv, err := v.ToProto()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(pv)
}

// FromAny converts plain Go data (nil, bool, numbers, string, []any,
// map[string]any and friends) as accepted by structpb.NewValue.
func FromAny(x any) (Value, error) {
	pv, err := structpb.NewValue(x)
	if err != nil {
		return Value{}, fmt.Errorf("variant: from %T: %w", x, err)
	}
	return FromProto(pv), nil
}

// MustFromAny is FromAny for test fixtures and literals; it panics on
// unsupported input.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders v as compact JSON, or "<invalid>" for non-finite numbers.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}
