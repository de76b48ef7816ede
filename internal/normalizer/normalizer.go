// Package normalizer turns raw API payloads into tagwalk entities. Each
// entity kind is registered with the fields that hold nested entities; those
// are decoded recursively, everything else is decoded as scalars.
package normalizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/fivetwenty-io/tagwalk-client/pkg/tagwalk"
	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/gjson"
)

// Static errors for err113 compliance.
var (
	ErrUnknownKind    = errors.New("unknown entity kind")
	ErrUnknownField   = errors.New("unknown entity field")
	ErrInvalidRule    = errors.New("invalid normalization rule")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Kind names an entity type.
type Kind string

// Entity kinds.
const (
	KindCity        Kind = "city"
	KindSeason      Kind = "season"
	KindDesigner    Kind = "designer"
	KindTag         Kind = "tag"
	KindIndividual  Kind = "individual"
	KindAffiliation Kind = "affiliation"
	KindFile        Kind = "file"
	KindMedia       Kind = "media"
	KindStreetstyle Kind = "streetstyle"
	KindGallery     Kind = "gallery"
)

// Rule says that Field holds one (or, if Many, a list of) entities of Kind.
type Rule struct {
	Field string
	Kind  Kind
	Many  bool
}

// One is a rule for a single nested entity.
func One(field string, kind Kind) Rule {
	return Rule{Field: field, Kind: kind}
}

// Many is a rule for a list of nested entities.
func Many(field string, kind Kind) Rule {
	return Rule{Field: field, Kind: kind, Many: true}
}

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type entry struct {
	typ    reflect.Type
	rules  []Rule
	fields map[string][]int
}

// Normalizer holds the registered kinds. Register everything before sharing
// it between goroutines; decoding only reads the table.
type Normalizer struct {
	entries map[Kind]*entry
}

// New returns a normalizer with every tagwalk entity registered.
func New() *Normalizer {
	n := &Normalizer{entries: make(map[Kind]*entry)}

	mustRegister[tagwalk.City](n, KindCity)
	mustRegister[tagwalk.Season](n, KindSeason)
	mustRegister[tagwalk.Designer](n, KindDesigner)
	mustRegister[tagwalk.Tag](n, KindTag)
	mustRegister[tagwalk.Individual](n, KindIndividual)
	mustRegister[tagwalk.Affiliation](n, KindAffiliation)
	mustRegister[tagwalk.File](n, KindFile)

	mustRegister[tagwalk.Media](n, KindMedia,
		One("city", KindCity),
		One("season", KindSeason),
		One("designer", KindDesigner),
		Many("tags", KindTag),
		Many("files", KindFile),
		Many("individuals", KindIndividual),
	)

	mustRegister[tagwalk.Streetstyle](n, KindStreetstyle,
		One("city", KindCity),
		One("season", KindSeason),
		Many("designers", KindDesigner),
		Many("tags", KindTag),
		Many("affiliations", KindAffiliation),
		Many("files", KindFile),
		Many("individuals", KindIndividual),
	)

	mustRegister[tagwalk.Gallery](n, KindGallery,
		Many("files", KindFile),
		Many("medias", KindMedia),
		Many("streetstyles", KindStreetstyle),
	)

	return n
}

// Register records T as the Go type of kind. Every rule must name a json
// field of T: a pointer or struct for single rules, a slice for Many.
func Register[T any](n *Normalizer, kind Kind, rules ...Rule) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidRule, typ)
	}

	fields := make(map[string][]int, len(rules))

	for _, rule := range rules {
		field, ok := fieldByJSONName(typ, rule.Field)
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, typ.Name(), rule.Field)
		}

		fieldKind := field.Type.Kind()

		switch {
		case rule.Many && fieldKind != reflect.Slice:
			return fmt.Errorf("%w: %s.%s is not a slice", ErrInvalidRule, typ.Name(), rule.Field)
		case !rule.Many && fieldKind != reflect.Pointer && fieldKind != reflect.Struct:
			return fmt.Errorf("%w: %s.%s is not an entity", ErrInvalidRule, typ.Name(), rule.Field)
		}

		fields[rule.Field] = field.Index
	}

	n.entries[kind] = &entry{typ: typ, rules: rules, fields: fields}

	return nil
}

func mustRegister[T any](n *Normalizer, kind Kind, rules ...Rule) {
	err := Register[T](n, kind, rules...)
	if err != nil {
		panic(err)
	}
}

// Denormalize builds the entity of kind from raw and returns a pointer to it.
func (n *Normalizer) Denormalize(raw map[string]any, kind Kind) (any, error) {
	value, err := n.denormalize(raw, kind)
	if err != nil {
		return nil, err
	}

	return value.Interface(), nil
}

// Decode builds a T from raw.
func Decode[T any](n *Normalizer, raw map[string]any, kind Kind) (*T, error) {
	value, err := n.Denormalize(raw, kind)
	if err != nil {
		return nil, err
	}

	typed, ok := value.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %s decodes to %T", ErrInvalidRule, kind, value)
	}

	return typed, nil
}

// DecodeBytes parses a JSON object and builds a T from it.
func DecodeBytes[T any](n *Normalizer, data []byte, kind Kind) (*T, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: expected an object for %s", ErrInvalidPayload, kind)
	}

	raw, _ := result.Value().(map[string]interface{})

	return Decode[T](n, raw, kind)
}

// DecodeList parses a JSON array and builds one T per element, in order.
// The result is never nil.
func DecodeList[T any](n *Normalizer, data []byte, kind Kind) ([]T, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}

	result := gjson.ParseBytes(data)
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected an array of %s", ErrInvalidPayload, kind)
	}

	elements := result.Array()
	items := make([]T, 0, len(elements))

	for i, element := range elements {
		raw, ok := element.Value().(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: element %d of %s list is not an object", ErrInvalidPayload, i, kind)
		}

		item, err := Decode[T](n, raw, kind)
		if err != nil {
			return nil, fmt.Errorf("decoding %s %d: %w", kind, i, err)
		}

		items = append(items, *item)
	}

	return items, nil
}

func (n *Normalizer) denormalize(raw map[string]any, kind Kind) (reflect.Value, error) {
	e, ok := n.entries[kind]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	scalars := make(map[string]any, len(raw))
	for key, value := range raw {
		scalars[key] = value
	}

	for _, rule := range e.rules {
		delete(scalars, rule.Field)
	}

	target := reflect.New(e.typ)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		DecodeHook:       timeHook,
		Result:           target.Interface(),
	})
	if err != nil {
		return reflect.Value{}, fmt.Errorf("creating %s decoder: %w", kind, err)
	}

	err = decoder.Decode(scalars)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: decoding %s: %w", ErrInvalidPayload, kind, err)
	}

	for _, rule := range e.rules {
		field := target.Elem().FieldByIndex(e.fields[rule.Field])

		if rule.Many {
			err = n.setMany(field, raw[rule.Field], rule)
		} else {
			err = n.setOne(field, raw[rule.Field], rule)
		}

		if err != nil {
			return reflect.Value{}, err
		}
	}

	return target, nil
}

func (n *Normalizer) setOne(field reflect.Value, value any, rule Rule) error {
	// An empty object may arrive encoded as an empty list.
	if list, ok := value.([]any); value == nil || ok && len(list) == 0 {
		return nil
	}

	raw, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %s is not an object", ErrInvalidPayload, rule.Field)
	}

	child, err := n.denormalize(raw, rule.Kind)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", rule.Field, err)
	}

	return assign(field, child, rule.Field)
}

func (n *Normalizer) setMany(field reflect.Value, value any, rule Rule) error {
	var elements []any

	switch typed := value.(type) {
	case nil:
	case []any:
		elements = typed
	case map[string]any:
		if len(typed) > 0 {
			return fmt.Errorf("%w: %s is not a list", ErrInvalidPayload, rule.Field)
		}
	default:
		return fmt.Errorf("%w: %s is not a list", ErrInvalidPayload, rule.Field)
	}

	slice := reflect.MakeSlice(field.Type(), len(elements), len(elements))

	for i, element := range elements {
		raw, ok := element.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s[%d] is not an object", ErrInvalidPayload, rule.Field, i)
		}

		child, err := n.denormalize(raw, rule.Kind)
		if err != nil {
			return fmt.Errorf("decoding %s[%d]: %w", rule.Field, i, err)
		}

		err = assign(slice.Index(i), child, rule.Field)
		if err != nil {
			return err
		}
	}

	field.Set(slice)

	return nil
}

// assign stores the entity pointer ptr into dst, dereferencing it when dst
// holds values.
func assign(dst, ptr reflect.Value, name string) error {
	switch {
	case ptr.Type().AssignableTo(dst.Type()):
		dst.Set(ptr)
	case ptr.Elem().Type().AssignableTo(dst.Type()):
		dst.Set(ptr.Elem())
	default:
		return fmt.Errorf("%w: %s cannot hold %s", ErrInvalidRule, name, ptr.Elem().Type())
	}

	return nil
}

func fieldByJSONName(typ reflect.Type, name string) (reflect.StructField, bool) {
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous {
			continue
		}

		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == name {
			return field, true
		}
	}

	return reflect.StructField{}, false
}

var timeType = reflect.TypeOf(time.Time{})

func timeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}

	text, _ := data.(string)
	if text == "" {
		return time.Time{}, nil
	}

	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, text)
		if err == nil {
			return parsed, nil
		}
	}

	return nil, fmt.Errorf("%w: unrecognized time %q", ErrInvalidPayload, text)
}
