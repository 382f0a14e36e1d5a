package storeapi

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/dragon98048/EverstMart/internal/checkout"
)

// encodeOrderEnvelope wraps an order into the {"orderData": ...} envelope
// the payment endpoints expect.
func encodeOrderEnvelope(order checkout.Order) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("orderData")
	e.ObjStart()

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range order.Items {
		e.ObjStart()
		e.FieldStart("product")
		e.Str(item.ProductRef)
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("price")
		e.Num(jx.Num(item.UnitPrice.String()))
		e.ObjEnd()
	}
	e.ArrEnd()

	addr := order.ShippingAddress
	e.FieldStart("shippingAddress")
	e.ObjStart()
	e.FieldStart("name")
	e.Str(addr.Name)
	e.FieldStart("phone")
	e.Str(addr.Phone)
	e.FieldStart("street")
	e.Str(addr.Street)
	e.FieldStart("landmark")
	e.Str(addr.Landmark)
	e.FieldStart("area")
	e.Str(addr.Area)
	e.FieldStart("city")
	e.Str(addr.City)
	e.FieldStart("state")
	e.Str(addr.State)
	e.FieldStart("zipCode")
	e.Str(addr.ZipCode)
	e.FieldStart("location")
	if addr.Location != nil {
		e.ObjStart()
		e.FieldStart("latitude")
		e.Float64(addr.Location.Latitude)
		e.FieldStart("longitude")
		e.Float64(addr.Location.Longitude)
		e.ObjEnd()
	} else {
		e.Null()
	}
	e.ObjEnd()

	e.FieldStart("totalAmount")
	e.Num(jx.Num(order.TotalAmount.String()))

	if order.PaymentMethod != "" {
		e.FieldStart("paymentMethod")
		e.Str(order.PaymentMethod)
	}

	e.ObjEnd()
	e.ObjEnd()
	return e.Bytes()
}

func decodeProducts(body []byte) ([]Product, error) {
	d := jx.DecodeBytes(body)
	var products []Product
	err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (Product, error) {
	var p Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "_id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "price":
			p.Price, err = decodeDecimal(d)
		case "category":
			p.Category, err = d.Str()
		case "image":
			p.ImageRef, err = d.Str()
		case "unit":
			p.Unit, err = d.Str()
		case "unitQuantity":
			p.UnitQuantity, err = decodeStringish(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

func decodeLogin(body []byte) (string, Profile, error) {
	var (
		token   string
		profile Profile
	)
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "token":
			var err error
			token, err = d.Str()
			return err
		case "user":
			var err error
			profile, err = decodeProfile(d)
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return "", Profile{}, errors.Wrap(err, "decode login response")
	}
	if token == "" {
		return "", Profile{}, errors.New("login response carried no token")
	}
	return token, profile, nil
}

func decodeProfile(d *jx.Decoder) (Profile, error) {
	var p Profile
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "_id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "email":
			p.Email, err = d.Str()
		case "phone":
			p.Phone, err = decodeStringish(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

func decodeOrderSummaries(body []byte) ([]OrderSummary, error) {
	d := jx.DecodeBytes(body)
	var summaries []OrderSummary
	err := d.Arr(func(d *jx.Decoder) error {
		var s OrderSummary
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "_id":
				s.ID, err = d.Str()
			case "totalAmount":
				s.TotalAmount, err = decodeDecimal(d)
			case "items":
				err = d.Arr(func(d *jx.Decoder) error {
					s.ItemCount++
					return d.Skip()
				})
			case "orderStatus":
				s.Status, err = d.Str()
			case "updatedAt":
				var raw string
				raw, err = d.Str()
				if err == nil {
					s.UpdatedAt, err = time.Parse(time.RFC3339, raw)
				}
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		summaries = append(summaries, s)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return summaries, nil
}

func decodeGatewayPost(body []byte) (*checkout.GatewayPost, error) {
	var (
		success bool
		post    = &checkout.GatewayPost{Params: make(map[string]string)}
	)
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "success":
			var err error
			success, err = d.Bool()
			return err
		case "payuUrl":
			var err error
			post.URL, err = d.Str()
			return err
		case "payuData":
			return d.Obj(func(d *jx.Decoder, key string) error {
				v, err := decodeStringish(d)
				if err != nil {
					return err
				}
				post.Params[key] = v
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode payment response")
	}
	if !success || post.URL == "" {
		return nil, errors.New("payment initiation rejected")
	}
	return post, nil
}

// decodeErrorMessage extracts the server's error message from a failure
// body. Unparseable bodies yield an empty message, never an error.
func decodeErrorMessage(body []byte) string {
	var message string
	d := jx.DecodeBytes(body)
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "error", "message":
			s, err := d.Str()
			if err != nil {
				return err
			}
			if message == "" {
				message = s
			}
			return nil
		default:
			return d.Skip()
		}
	})
	return message
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	num, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(num.String())
}

// decodeStringish reads a value the API serves inconsistently as either a
// string or a number.
func decodeStringish(d *jx.Decoder) (string, error) {
	if d.Next() == jx.String {
		return d.Str()
	}
	num, err := d.Num()
	if err != nil {
		return "", err
	}
	return num.String(), nil
}
