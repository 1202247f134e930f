package services

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"seslidavet.link/models"
)

// ScriptServiceError şablon servisi hataları.
type ScriptServiceError string

func (e ScriptServiceError) Error() string { return string(e) }

const (
	// ErrTemplateUnavailable şablon dosyası okunamadığında döner.
	// Önizleme adımı için ölümcüldür; çağıran bunu kullanıcıya hata olarak yansıtır.
	ErrTemplateUnavailable ScriptServiceError = "davet şablonu okunamadı"
)

// GuestNamePlaceholder davetli adının arama anında doldurulacağı token.
// Şablondaki köşeli parantezli alanların aksine etkinlik bazında çözülmez.
const GuestNamePlaceholder = "{{GuestName}}"

// Boş alanlar için genel ifadeler. Şablon doldurma asla hata üretmez;
// eksik veri bu ifadelerle kapatılır.
const (
	fallbackHost     = "the host"
	fallbackType     = "an event"
	fallbackDate     = "an upcoming date"
	fallbackTime     = "a convenient time"
	fallbackLocation = "a location"
	fallbackDuration = "a few hours"
	fallbackDeadline = "as soon as possible"
	fallbackArrival  = "a few minutes early"
	fallbackDress    = "not specified"
	fallbackNone     = "None"
)

// IScriptService davet senaryosu üretimi için arayüz.
type IScriptService interface {
	GenerateEventScript(event *models.Event) (string, error)
	PersonalizeForGuest(script, guestName string) string
	FirstMessage(event *models.Event) string
	EndCallMessage(event *models.Event) string
	AssistantName(event *models.Event) string
}

// ScriptService statik şablonu etkinlik verisiyle doldurur.
// Özel talimatlardan varış saati / kıyafet kodu çıkarımı bilinçli olarak
// basit anahtar kelime eşleşmesidir; gerçek NLP'ye yükseltmek gözlemlenen
// davranışı değiştirir.
type ScriptService struct {
	templatePath string
}

// NewScriptService yeni bir ScriptService örneği oluşturur.
func NewScriptService(templatePath string) IScriptService {
	return &ScriptService{templatePath: templatePath}
}

// GenerateEventScript şablonu okur ve tüm köşeli parantezli alanları doldurur.
// Çıktıda davetli adı için tek bir {{GuestName}} token'ı kalır.
func (s *ScriptService) GenerateEventScript(event *models.Event) (string, error) {
	raw, err := os.ReadFile(s.templatePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}

	replacer := strings.NewReplacer(
		"[AssistantName]", s.AssistantName(event),
		"[HostName]", orFallback(event.HostName, fallbackHost),
		"[EventType]", orFallback(event.EventType, fallbackType),
		"[EventDate]", formatLongDate(event.EventDate, fallbackDate),
		"[EventTime]", formatClock(event.EventTime, fallbackTime),
		"[Location]", orFallback(event.Location, fallbackLocation),
		"[Duration]", orFallback(event.Duration, fallbackDuration),
		"[RSVPDeadline]", formatDeadline(event.RSVPDeadline),
		"[SpecialInstructions]", orFallback(strings.TrimSpace(event.SpecialInstructions), fallbackNone),
		"[CulturalPreferences]", orFallback(strings.TrimSpace(event.CulturalPreferences), fallbackNone),
		"[ArrivalTime]", arrivalTime(event),
		"[DressCode]", dressCode(event.SpecialInstructions),
		"[AlternateDate]", alternateDate(event.EventDate),
		"[AlternateTime]", formatClock(event.EventTime, fallbackTime),
	)

	return replacer.Replace(string(raw)), nil
}

// PersonalizeForGuest senaryodaki davetli adı token'ını gerçek adla değiştirir.
// Başka hiçbir alan yeniden doldurulmaz: kullanıcı senaryoyu düzenleyip
// alanları silmişse silinmiş kalır.
func (s *ScriptService) PersonalizeForGuest(script, guestName string) string {
	return strings.ReplaceAll(script, GuestNamePlaceholder, guestName)
}

// FirstMessage aramanın açılış cümlesini üretir; {{GuestName}} arama anında doldurulur.
func (s *ScriptService) FirstMessage(event *models.Event) string {
	return fmt.Sprintf("Hello, this is %s from SesliDavet, calling on behalf of %s. May I speak with %s, please?",
		s.AssistantName(event), orFallback(event.HostName, fallbackHost), GuestNamePlaceholder)
}

// EndCallMessage aramanın kapanış cümlesini üretir.
func (s *ScriptService) EndCallMessage(event *models.Event) string {
	return fmt.Sprintf("Thank you so much, %s! %s appreciates you letting us know. Have a great day!",
		GuestNamePlaceholder, orFallback(event.HostName, fallbackHost))
}

// AssistantName ses seçimine göre asistan adını belirler:
// male -> Rohan, custom -> ev sahibinin adı, diğer her durumda Eva.
func (s *ScriptService) AssistantName(event *models.Event) string {
	switch event.VoiceChoice {
	case models.VoiceChoiceMale:
		return "Rohan"
	case models.VoiceChoiceCustom:
		if name := strings.TrimSpace(event.HostName); name != "" {
			return name
		}
	}
	return "Eva"
}

// --- Yardımcılar ---

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// formatLongDate tarihi uzun okunur biçime çevirir ("Friday, June 20, 2025").
func formatLongDate(d time.Time, fallback string) string {
	if d.IsZero() {
		return fallback
	}
	return d.Format("Monday, January 2, 2006")
}

// formatClock "15:04" veya "15:04:05" saat dizesini 12 saatlik biçime çevirir ("7:30 PM").
func formatClock(clock, fallback string) string {
	t, ok := parseClock(clock)
	if !ok {
		return fallback
	}
	return t.Format("3:04 PM")
}

func parseClock(clock string) (time.Time, bool) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDeadline(d *time.Time) string {
	if d == nil || d.IsZero() {
		return fallbackDeadline
	}
	return d.Format("Monday, January 2, 2006")
}

var digitToken = regexp.MustCompile(`[0-9]+`)

// arrivalTime varsayılan olarak etkinlik saatinden 15 dakika öncesidir.
// Özel talimatlarda "arrive" kelimesinin yakınında bir sayı geçiyorsa
// bu sayı dakika olarak kullanılır.
func arrivalTime(event *models.Event) string {
	t, ok := parseClock(event.EventTime)
	if !ok {
		return fallbackArrival
	}

	minutes := 15
	lower := strings.ToLower(event.SpecialInstructions)
	if idx := strings.Index(lower, "arrive"); idx >= 0 {
		start := idx - 40
		if start < 0 {
			start = 0
		}
		end := idx + 40
		if end > len(lower) {
			end = len(lower)
		}
		if match := digitToken.FindString(lower[start:end]); match != "" {
			if n, err := strconv.Atoi(match); err == nil && n > 0 && n < 24*60 {
				minutes = n
			}
		}
	}

	return t.Add(-time.Duration(minutes) * time.Minute).Format("3:04 PM")
}

// Küçük harfe çevirme bazı karakterlerde bayt uzunluğunu değiştirdiği için
// arama doğrudan orijinal metin üzerinde, büyük/küçük harf duyarsız yapılır.
var dressCodePattern = regexp.MustCompile(`(?i)dress code`)

// dressCode özel talimatlardan "dress code" ifadesinden sonraki metni,
// ilk nokta veya noktalı virgüle kadar alır.
func dressCode(instructions string) string {
	loc := dressCodePattern.FindStringIndex(instructions)
	if loc == nil {
		return fallbackDress
	}

	rest := instructions[loc[1]:]
	if cut := strings.IndexAny(rest, ".;"); cut >= 0 {
		rest = rest[:cut]
	}
	rest = strings.Trim(rest, " :-")
	if rest == "" {
		return fallbackDress
	}
	return rest
}

// alternateDate etkinlik tarihinin bir gün sonrasıdır; saat değişmez.
func alternateDate(d time.Time) string {
	if d.IsZero() {
		return "the following day"
	}
	return d.AddDate(0, 0, 1).Format("Monday, January 2, 2006")
}

var _ IScriptService = (*ScriptService)(nil)
