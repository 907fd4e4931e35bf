package protograph

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/funvibe/dummy/internal/catalog"
	"github.com/funvibe/dummy/internal/synth"
)

const shopProto = `
syntax = "proto3";

package shop.v1;

import "google/protobuf/timestamp.proto";
import "google/protobuf/duration.proto";

enum Status {
  STATUS_UNSPECIFIED = 0;
  STATUS_OPEN = 1;
  STATUS_CLOSED = 2;
}

message Item {
  string sku = 1;
  int32 quantity = 2;
}

message Order {
  string id = 1;
  Status status = 2;
  repeated Item items = 3;
  map<string, int64> totals = 4;
  google.protobuf.Timestamp created = 5;
  optional string note = 6;
  oneof payment {
    string card = 7;
    string voucher = 8;
  }
  bytes blob = 9;
  Order parent = 10;
  google.protobuf.Duration ttl = 11;
}
`

func parseShop(t *testing.T) *Files {
	t.Helper()
	files, err := Parse(map[string]string{"shop/v1/shop.proto": shopProto}, "shop/v1/shop.proto")
	require.NoError(t, err)
	return files
}

func TestParse(t *testing.T) {
	files := parseShop(t)
	assert.Equal(t, []string{"shop/v1/shop.proto"}, files.Names())

	md, err := files.Message("shop.v1.Order")
	require.NoError(t, err)
	assert.Equal(t, protoreflect.FullName("shop.v1.Order"), md.FullName())

	_, err = files.Enum("shop.v1.Status")
	require.NoError(t, err)

	_, err = files.Message("shop.v1.Missing")
	assert.EqualError(t, err, `message type "shop.v1.Missing" not found`)

	_, err = Parse(map[string]string{"bad.proto": "syntax = nonsense"}, "bad.proto")
	assert.Error(t, err)
}

func TestDynamicMessageFixed(t *testing.T) {
	md, err := parseShop(t).Message("shop.v1.Order")
	require.NoError(t, err)
	g := New(catalog.New())
	n := g.Message(md)
	assert.Equal(t, "shop.v1.Order", n.String())

	v, err := synth.New().Synthesize(n, false, nil, nil, "")
	require.NoError(t, err)
	msg, ok := v.Interface().(*dynamicpb.Message)
	require.True(t, ok)

	fields := md.Fields()
	assert.Equal(t, "", msg.Get(fields.ByName("id")).String())
	assert.Equal(t, protoreflect.EnumNumber(0), msg.Get(fields.ByName("status")).Enum())
	for _, name := range []protoreflect.Name{"created", "note", "card", "voucher", "parent", "ttl"} {
		assert.False(t, msg.Has(fields.ByName(name)), "%s is unset", name)
	}
	assert.Zero(t, msg.Get(fields.ByName("items")).List().Len())
}

func TestDynamicMessageOverrides(t *testing.T) {
	md, err := parseShop(t).Message("shop.v1.Order")
	require.NoError(t, err)
	n := New(catalog.New()).Message(md)

	created := time.Unix(100, 5).UTC()
	args := map[string]any{
		"id":      "o-1",
		"card":    "4111",
		"created": created,
		"ttl":     90 * time.Second,
		"totals":  map[string]int64{"eur": 12},
	}
	v, err := synth.New().Synthesize(n, false, args, nil, "")
	require.NoError(t, err)
	msg := v.Interface().(*dynamicpb.Message)

	fields := md.Fields()
	assert.Equal(t, "o-1", msg.Get(fields.ByName("id")).String())
	assert.Equal(t, "4111", msg.Get(fields.ByName("card")).String())

	ts := msg.Get(fields.ByName("created")).Message()
	assert.Equal(t, int64(100), ts.Get(ts.Descriptor().Fields().ByName("seconds")).Int())
	assert.Equal(t, int64(5), ts.Get(ts.Descriptor().Fields().ByName("nanos")).Int())

	ttl := msg.Get(fields.ByName("ttl")).Message()
	assert.Equal(t, int64(90), ttl.Get(ttl.Descriptor().Fields().ByName("seconds")).Int())

	totals := msg.Get(fields.ByName("totals")).Map()
	assert.Equal(t, int64(12), totals.Get(protoreflect.ValueOfString("eur").MapKey()).Int())
}

func TestDynamicMessageRandom(t *testing.T) {
	md, err := parseShop(t).Message("shop.v1.Order")
	require.NoError(t, err)
	n := New(catalog.New()).Message(md)
	e := synth.New(synth.WithRand(synth.NewRand(1)))
	for range 20 {
		v, err := e.Synthesize(n, true, nil, nil, "")
		require.NoError(t, err)
		_, err = proto.Marshal(v.Interface().(proto.Message))
		require.NoError(t, err)
	}
}

func TestGeneratedMessage(t *testing.T) {
	cat := catalog.New()
	g := New(cat)
	n := g.Register((*descriptorpb.FieldDescriptorProto)(nil))

	goType := reflect.TypeFor[*descriptorpb.FieldDescriptorProto]()
	sym, ok := cat.Lookup(goType)
	require.True(t, ok)
	assert.Same(t, sym, n.Symbol())

	v, err := synth.New().Synthesize(n, false, nil, nil, "")
	require.NoError(t, err)
	got := v.Interface().(*descriptorpb.FieldDescriptorProto)
	assert.True(t, proto.Equal(&descriptorpb.FieldDescriptorProto{}, got))

	args := map[string]any{"name": "id", "type": descriptorpb.FieldDescriptorProto_TYPE_STRING}
	v, err = synth.New().Synthesize(n, false, args, nil, "")
	require.NoError(t, err)
	got = v.Interface().(*descriptorpb.FieldDescriptorProto)
	assert.Equal(t, "id", got.GetName())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_STRING, got.GetType())

	e := synth.New(synth.WithRand(synth.NewRand(3)))
	for range 10 {
		_, err := e.Synthesize(n, true, nil, nil, "")
		require.NoError(t, err)
	}
}

func TestGeneratedEnum(t *testing.T) {
	g := New(catalog.New())
	n := g.Enum(descriptorpb.FieldDescriptorProto_TYPE_DOUBLE.Descriptor())

	v, err := synth.New().Synthesize(n, false, nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, v.Interface())

	e := synth.New(synth.WithRand(synth.NewRand(2)))
	for range 10 {
		v, err := e.Synthesize(n, true, nil, nil, "")
		require.NoError(t, err)
		typ := v.Interface().(descriptorpb.FieldDescriptorProto_Type)
		assert.NotNil(t, typ.Descriptor().Values().ByNumber(typ.Number()))
	}
	assert.Same(t, n.Symbol(), g.Enum(descriptorpb.FieldDescriptorProto_TYPE_DOUBLE.Descriptor()).Symbol())
}
