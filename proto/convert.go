// Package proto converts values and argument bindings to and from datapb.Data
package proto

import (
	"github.com/lyraproj/data-protobuf/datapb"
	"github.com/lyraproj/rcall/dispatch"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
)

// ToPBData converts a value into a datapb.Data. Promises are forced. A list or bundle
// that has named elements becomes a hash where unnamed elements are keyed by their
// position. Values that have no data representation, such as callables, are converted
// to their string rendering.
func ToPBData(c eval.Context, v eval.Value) (value *datapb.Data) {
	switch v := types.Force(c, v).(type) {
	case types.LogicalValue:
		value = &datapb.Data{Kind: &datapb.Data_BooleanValue{BooleanValue: v.Bool()}}
	case types.FloatValue:
		value = &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: v.Float()}}
	case types.IntegerValue:
		value = &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: v.Int()}}
	case types.StringValue:
		value = &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: string(v)}}
	case *types.ListValue:
		names := make([]string, v.Len())
		for i := range names {
			names[i] = v.NameAt(i)
		}
		value = entriesToPBData(c, names, v.Values())
	case *types.Bundle:
		value = entriesToPBData(c, v.Names(), v.Values())
	case nil:
		value = &datapb.Data{Kind: &datapb.Data_UndefValue{}}
	default:
		if v == types.Null {
			value = &datapb.Data{Kind: &datapb.Data_UndefValue{}}
		} else {
			value = &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: v.String()}}
		}
	}
	return
}

func entriesToPBData(c eval.Context, names []string, values []eval.Value) *datapb.Data {
	named := false
	for _, n := range names {
		if n != `` {
			named = true
			break
		}
	}
	if !named {
		vs := make([]*datapb.Data, len(values))
		for i, e := range values {
			vs[i] = ToPBData(c, e)
		}
		return &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: vs}}}
	}
	es := make([]*datapb.DataEntry, len(values))
	for i, e := range values {
		var key *datapb.Data
		if n := names[i]; n != `` {
			key = &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: n}}
		} else {
			key = &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: int64(i)}}
		}
		es[i] = &datapb.DataEntry{Key: key, Value: ToPBData(c, e)}
	}
	return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: es}}}
}

// BindingToPB converts a binding into a hash keyed by formal name. Unbound formals have
// an undef value.
func BindingToPB(c eval.Context, b *dispatch.Binding) *datapb.Data {
	formals := b.Formals()
	es := make([]*datapb.DataEntry, formals.Len())
	for i, v := range b.Slots() {
		es[i] = &datapb.DataEntry{
			Key:   &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: formals.Name(i)}},
			Value: ToPBData(c, v)}
	}
	return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: es}}}
}

// FromPBData converts a datapb.Data into a value. An array becomes an unnamed list and a
// hash becomes a named list. Integer keys denote unnamed entries and other keys that
// are not strings are rendered as names.
func FromPBData(v *datapb.Data) (value eval.Value) {
	switch v.Kind.(type) {
	case *datapb.Data_BooleanValue:
		value = types.WrapLogical(v.GetBooleanValue())
	case *datapb.Data_FloatValue:
		value = types.WrapFloat(v.GetFloatValue())
	case *datapb.Data_IntegerValue:
		value = types.WrapInteger(v.GetIntegerValue())
	case *datapb.Data_StringValue:
		value = types.WrapString(v.GetStringValue())
	case *datapb.Data_ArrayValue:
		av := v.GetArrayValue().GetValues()
		vs := make([]eval.Value, len(av))
		for i, elem := range av {
			vs[i] = FromPBData(elem)
		}
		value = types.WrapList(nil, vs)
	case *datapb.Data_HashValue:
		hv := v.GetHashValue().GetEntries()
		names := make([]string, len(hv))
		vs := make([]eval.Value, len(hv))
		for i, entry := range hv {
			switch k := FromPBData(entry.Key).(type) {
			case types.StringValue:
				names[i] = string(k)
			case types.IntegerValue:
				// positional entry
			default:
				names[i] = k.String()
			}
			vs[i] = FromPBData(entry.Value)
		}
		value = types.WrapList(names, vs)
	default:
		value = types.Null
	}
	return
}
