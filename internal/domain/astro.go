package domain

import (
	"fmt"
	"math"
)

const DegreesPerSign = 30

// ZodiacSign - один из 12 фиксированных секторов эклиптики по 30°
type ZodiacSign int

const (
	Aries ZodiacSign = iota // 0° - حمل
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// персидские названия знаков в каноническом порядке (0°=حمل)
var zodiacSignsFa = [12]string{
	"حمل", "ثور", "جوزا", "سرطان", "اسد", "سنبله",
	"میزان", "عقرب", "قوس", "جدی", "دلو", "حوت",
}

var zodiacSignsEn = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s ZodiacSign) String() string {
	if s < 0 || s > 11 {
		return fmt.Sprintf("ZodiacSign(%d)", int(s))
	}
	return zodiacSignsEn[s]
}

// NameFa возвращает персидское название знака
func (s ZodiacSign) NameFa() string {
	if s < 0 || s > 11 {
		return "؟"
	}
	return zodiacSignsFa[s]
}

// TrackedBody - небесное тело из фиксированного каталога
type TrackedBody string

const (
	BodySun     TrackedBody = "sun"
	BodyMoon    TrackedBody = "moon"
	BodyMercury TrackedBody = "mercury"
	BodyVenus   TrackedBody = "venus"
	BodyMars    TrackedBody = "mars"
	BodyJupiter TrackedBody = "jupiter"
	BodySaturn  TrackedBody = "saturn"
	BodyUranus  TrackedBody = "uranus"
	BodyNeptune TrackedBody = "neptune"
	BodyPluto   TrackedBody = "pluto"
)

// TrackedBodies - каталог тел в порядке отображения.
// Порядок фиксирован и является частью контракта сборщика карты.
func TrackedBodies() []TrackedBody {
	return []TrackedBody{
		BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars,
		BodyJupiter, BodySaturn, BodyUranus, BodyNeptune, BodyPluto,
	}
}

// персидские имена тел с астрологическими символами
var bodyNamesFa = map[TrackedBody]string{
	BodySun:     "خورشید ☉",
	BodyMoon:    "ماه ☽",
	BodyMercury: "عطارد ☿",
	BodyVenus:   "زهره ♀",
	BodyMars:    "مریخ ♂",
	BodyJupiter: "مشتری ♃",
	BodySaturn:  "زحل ♄",
	BodyUranus:  "اورانوس ⛢",
	BodyNeptune: "نپتون ♆",
	BodyPluto:   "پلوتو ♇",
}

func (b TrackedBody) String() string {
	return string(b)
}

// NameFa возвращает персидское имя тела с символом
func (b TrackedBody) NameFa() string {
	if name, ok := bodyNamesFa[b]; ok {
		return name
	}
	return string(b)
}

// IsValid проверяет, что тело есть в каталоге
func (b TrackedBody) IsValid() bool {
	_, ok := bodyNamesFa[b]
	return ok
}

// NormalizeLongitude приводит эклиптическую долготу к диапазону [0, 360).
// Долгота циклична: отрицательные значения складываются в диапазон.
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// ZodiacPlacement - позиция тела в знаке зодиака
type ZodiacPlacement struct {
	Sign      ZodiacSign `json:"sign"`
	Degree    int        `json:"degree"` // градус внутри знака, 0..29
	Minute    int        `json:"minute"` // угловая минута, 0..59
	Longitude float64    `json:"longitude"`
}

// Classify раскладывает эклиптическую долготу в знак и градус/минуту внутри знака.
// Интервалы знаков полуоткрытые: долгота ровно на границе 30° принадлежит
// знаку, начинающемуся с этой границы.
func Classify(lon float64) ZodiacPlacement {
	norm := NormalizeLongitude(lon)

	signIndex := int(norm / DegreesPerSign)
	if signIndex > 11 {
		signIndex = 11 // защита от norm == 360 из-за округления float
	}

	degreeInSign := math.Mod(norm, DegreesPerSign)
	degree := int(degreeInSign)
	minute := int((degreeInSign - float64(degree)) * 60)

	return ZodiacPlacement{
		Sign:      ZodiacSign(signIndex),
		Degree:    degree,
		Minute:    minute,
		Longitude: norm,
	}
}

// PositionFa форматирует градус и минуту: 15° 30'
func (p ZodiacPlacement) PositionFa() string {
	return fmt.Sprintf("%d° %02d'", p.Degree, p.Minute)
}
