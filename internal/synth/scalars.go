package synth

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"
	_ "time/tzdata" // random zones must load without a system zoneinfo

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/funvibe/dummy/internal/typegraph"
)

// Alphabet is the character set of random characters and strings.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 -_"

// FixedChar is the fixed character value.
const FixedChar = 'a'

const (
	minUnix       = -62135596800 // 0001-01-01T00:00:00Z
	maxUnix       = 253402300799 // 9999-12-31T23:59:59Z
	secondsPerDay = 86400
	maxOffset     = 18 * 3600
)

var (
	epoch     = time.Unix(0, 0).UTC()
	epochDate = civil.Date{Year: 1970, Month: time.January, Day: 1}
)

var zoneNames = []string{
	"UTC", "Africa/Cairo", "Africa/Johannesburg", "Africa/Lagos",
	"America/Anchorage", "America/Chicago", "America/Denver", "America/Los_Angeles",
	"America/Mexico_City", "America/New_York", "America/Sao_Paulo", "America/Toronto",
	"Asia/Dubai", "Asia/Hong_Kong", "Asia/Kathmandu", "Asia/Kolkata", "Asia/Seoul",
	"Asia/Shanghai", "Asia/Singapore", "Asia/Tokyo", "Atlantic/Reykjavik",
	"Australia/Adelaide", "Australia/Sydney", "Europe/Berlin", "Europe/Istanbul",
	"Europe/London", "Europe/Madrid", "Europe/Moscow", "Europe/Paris",
	"Pacific/Auckland", "Pacific/Chatham", "Pacific/Honolulu", "Pacific/Kiritimati",
}

var currencies = []currency.Unit{
	currency.USD, currency.EUR, currency.JPY, currency.GBP, currency.CHF,
	currency.CAD, currency.AUD, currency.CNY, currency.INR, currency.BRL,
	currency.RUB, currency.KRW, currency.MXN, currency.SEK, currency.NOK,
	currency.DKK, currency.PLN, currency.TRY, currency.ZAR, currency.NZD,
	currency.SAR, currency.HKD, currency.THB, currency.IDR, currency.TWD,
}

var locales = []language.Tag{
	language.AmericanEnglish, language.BritishEnglish, language.English,
	language.French, language.CanadianFrench, language.German, language.Spanish,
	language.LatinAmericanSpanish, language.Italian, language.Portuguese,
	language.BrazilianPortuguese, language.Dutch, language.Swedish, language.Polish,
	language.Russian, language.Ukrainian, language.Turkish, language.Arabic,
	language.Hebrew, language.Hindi, language.Japanese, language.Korean,
	language.SimplifiedChinese, language.TraditionalChinese, language.Thai,
}

// scalar returns the value of a well-known identity in its canonical Go
// type; the caller converts it to the node's runtime type.
func (c *call) scalar(k typegraph.Kind) (reflect.Value, error) {
	if !c.randomize {
		return fixedScalar(k), nil
	}
	var (
		v   any
		err error
	)
	c.draw(func(r RandomSource) { v, err = randomScalar(k, r) })
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(v), nil
}

func fixedScalar(k typegraph.Kind) reflect.Value {
	var v any
	switch k {
	case typegraph.KindAny:
		v = struct{}{}
	case typegraph.KindError:
		return reflect.Zero(errorType)
	case typegraph.KindBool:
		v = false
	case typegraph.KindInt:
		v = 0
	case typegraph.KindInt8:
		v = int8(0)
	case typegraph.KindInt16:
		v = int16(0)
	case typegraph.KindInt32:
		v = int32(0)
	case typegraph.KindInt64:
		v = int64(0)
	case typegraph.KindUint:
		v = uint(0)
	case typegraph.KindUint8:
		v = uint8(0)
	case typegraph.KindUint16:
		v = uint16(0)
	case typegraph.KindUint32:
		v = uint32(0)
	case typegraph.KindUint64:
		v = uint64(0)
	case typegraph.KindUintptr:
		v = uintptr(0)
	case typegraph.KindFloat32:
		v = float32(0)
	case typegraph.KindFloat64:
		v = float64(0)
	case typegraph.KindComplex64:
		v = complex64(0)
	case typegraph.KindComplex128:
		v = complex128(0)
	case typegraph.KindChar:
		v = rune(FixedChar)
	case typegraph.KindString:
		v = ""
	case typegraph.KindBigInt:
		v = new(big.Int)
	case typegraph.KindBigFloat:
		v = new(big.Float)
	case typegraph.KindBigRat:
		v = new(big.Rat)
	case typegraph.KindTime:
		v = epoch
	case typegraph.KindDate:
		v = epochDate
	case typegraph.KindTimeOfDay:
		v = civil.Time{}
	case typegraph.KindDateTime:
		v = civil.DateTime{Date: epochDate}
	case typegraph.KindDuration:
		v = time.Duration(0)
	case typegraph.KindLocation, typegraph.KindZoneOffset:
		v = time.UTC
	case typegraph.KindMonth:
		v = time.January
	case typegraph.KindWeekday:
		v = time.Sunday
	case typegraph.KindCurrency:
		v = currency.USD
	case typegraph.KindLocale:
		v = language.AmericanEnglish
	case typegraph.KindUUID:
		v = uuid.Nil
	}
	return reflect.ValueOf(v)
}

func randomScalar(k typegraph.Kind, r RandomSource) (any, error) {
	switch k {
	case typegraph.KindAny, typegraph.KindError:
		// no meaningful domain to sample
		return fixedScalar(k).Interface(), nil
	case typegraph.KindBool:
		return r.IntN(2) == 1, nil
	case typegraph.KindInt:
		return int(r.Uint64()), nil
	case typegraph.KindInt8:
		return int8(r.Uint64()), nil
	case typegraph.KindInt16:
		return int16(r.Uint64()), nil
	case typegraph.KindInt32:
		return int32(r.Uint64()), nil
	case typegraph.KindInt64:
		return int64(r.Uint64()), nil
	case typegraph.KindUint:
		return uint(r.Uint64()), nil
	case typegraph.KindUint8:
		return uint8(r.Uint64()), nil
	case typegraph.KindUint16:
		return uint16(r.Uint64()), nil
	case typegraph.KindUint32:
		return uint32(r.Uint64()), nil
	case typegraph.KindUint64:
		return r.Uint64(), nil
	case typegraph.KindUintptr:
		return uintptr(r.Uint64()), nil
	case typegraph.KindFloat32:
		return r.Float32(), nil
	case typegraph.KindFloat64:
		return r.Float64(), nil
	case typegraph.KindComplex64:
		return complex(r.Float32(), r.Float32()), nil
	case typegraph.KindComplex128:
		return complex(r.Float64(), r.Float64()), nil
	case typegraph.KindChar:
		return rune(Alphabet[r.IntN(len(Alphabet))]), nil
	case typegraph.KindString:
		b := make([]byte, r.IntN(MaxCollectionSize))
		for i := range b {
			b[i] = Alphabet[r.IntN(len(Alphabet))]
		}
		return string(b), nil
	case typegraph.KindBigInt:
		return big.NewInt(int64(r.Uint64())), nil
	case typegraph.KindBigFloat:
		return new(big.Float).SetInt64(int64(r.Uint64())), nil
	case typegraph.KindBigRat:
		return big.NewRat(int64(r.Uint64()), r.Int64N(math.MaxInt64)+1), nil
	case typegraph.KindTime:
		return time.Unix(int64In(r, minUnix, maxUnix), r.Int64N(int64(time.Second))).UTC(), nil
	case typegraph.KindDate:
		return randomDate(r), nil
	case typegraph.KindTimeOfDay:
		return randomTimeOfDay(r), nil
	case typegraph.KindDateTime:
		return civil.DateTime{Date: randomDate(r), Time: randomTimeOfDay(r)}, nil
	case typegraph.KindDuration:
		return time.Duration(r.Uint64() >> 1), nil
	case typegraph.KindLocation:
		name := zoneNames[r.IntN(len(zoneNames))]
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("loading zone %s: %w", name, err)
		}
		return loc, nil
	case typegraph.KindZoneOffset:
		return fixedZone(int(int64In(r, -maxOffset, maxOffset))), nil
	case typegraph.KindMonth:
		return time.Month(r.IntN(12) + 1), nil
	case typegraph.KindWeekday:
		return time.Weekday(r.IntN(7)), nil
	case typegraph.KindCurrency:
		return currencies[r.IntN(len(currencies))], nil
	case typegraph.KindLocale:
		return locales[r.IntN(len(locales))], nil
	case typegraph.KindUUID:
		return uuid.NewRandomFromReader(uint64Reader{r})
	}
	return nil, fmt.Errorf("no random rule for %s", k)
}

func randomDate(r RandomSource) civil.Date {
	day := int64In(r, minUnix/secondsPerDay, maxUnix/secondsPerDay)
	return civil.DateOf(time.Unix(day*secondsPerDay, 0).UTC())
}

func randomTimeOfDay(r RandomSource) civil.Time {
	ns := r.Int64N(secondsPerDay * int64(time.Second))
	return civil.TimeOf(time.Unix(0, ns).UTC())
}

// fixedZone names the zone like an ISO-8601 offset, "+05:30".
func fixedZone(seconds int) *time.Location {
	if seconds == 0 {
		return time.UTC
	}
	sign := '+'
	abs := seconds
	if abs < 0 {
		sign, abs = '-', -abs
	}
	name := fmt.Sprintf("%c%02d:%02d", sign, abs/3600, abs%3600/60)
	if s := abs % 60; s != 0 {
		name += fmt.Sprintf(":%02d", s)
	}
	return time.FixedZone(name, seconds)
}
