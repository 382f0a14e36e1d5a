package cart

import (
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// encodeItems serializes the full cart as a JSON array. The whole cart is
// written on every mutation; the stored value is never patched in place.
func encodeItems(items []LineItem) string {
	var e jx.Encoder
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("productId")
		e.Str(item.ProductID)
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("unitPrice")
		e.Num(jx.Num(item.UnitPrice.String()))
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("image")
		e.Str(item.ImageRef)
		e.FieldStart("unitLabel")
		e.Str(item.UnitLabel)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.String()
}

// decodeItems parses a serialized cart. Any malformed input yields an error;
// the Store maps that to an empty cart rather than propagating it.
func decodeItems(raw string) ([]LineItem, error) {
	d := jx.DecodeStr(raw)
	var items []LineItem
	err := d.Arr(func(d *jx.Decoder) error {
		var item LineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "productId":
				item.ProductID, err = d.Str()
			case "name":
				item.Name, err = d.Str()
			case "unitPrice":
				var num jx.Num
				num, err = d.Num()
				if err == nil {
					item.UnitPrice, err = decimal.NewFromString(num.String())
				}
			case "quantity":
				item.Quantity, err = d.Int()
			case "image":
				item.ImageRef, err = d.Str()
			case "unitLabel":
				item.UnitLabel, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
