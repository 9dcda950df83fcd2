package usecase

import (
	"regexp"
	"strings"

	"github.com/hukukasistan/mevzuat-search/internal/core/domain"
)

// intentPatterns maps every intent to its query patterns. Patterns run over
// the Turkish-lowercased raw query; score is the count of matching patterns.
var intentPatterns = map[domain.Intent][]*regexp.Regexp{
	domain.IntentDefinition: {
		regexp.MustCompile(`nedir`),
		regexp.MustCompile(`ne demek`),
		regexp.MustCompile(`tanımı|anlamı`),
	},
	domain.IntentProcedure: {
		regexp.MustCompile(`nasıl (yapılır|alınır|açılır|başvurulur)`),
		regexp.MustCompile(`hangi adımlar|süreç|prosedür`),
		regexp.MustCompile(`başvuru`),
	},
	domain.IntentRights: {
		regexp.MustCompile(`hakkım|haklarım`),
		regexp.MustCompile(`alabilir miyim|talep edebilir`),
		regexp.MustCompile(`hakkı var mı`),
	},
	domain.IntentObligation: {
		regexp.MustCompile(`zorunda mıyım|yükümlü`),
		regexp.MustCompile(`zorunlu mu`),
		regexp.MustCompile(`sorumlulu`),
	},
	domain.IntentPenalty: {
		regexp.MustCompile(`cezası ne`),
		regexp.MustCompile(`kaç yıl|para cezası`),
		regexp.MustCompile(`yaptırım`),
	},
	domain.IntentDocument: {
		regexp.MustCompile(`hangi belgeler|evrak`),
		regexp.MustCompile(`belge.{0,4} gerek`),
		regexp.MustCompile(`form doldur`),
	},
	domain.IntentTimeline: {
		regexp.MustCompile(`ne zaman|süresi`),
		regexp.MustCompile(`kaç gün|kaç ay|zamanaşımı`),
		regexp.MustCompile(`son tarih`),
	},
	domain.IntentCost: {
		regexp.MustCompile(`ücreti|masraf|harç`),
		regexp.MustCompile(`ne kadar tutar|kaç para|maliyet`),
	},
	domain.IntentAdvice: {
		regexp.MustCompile(`ne yapmalıyım|ne yapabilirim`),
		regexp.MustCompile(`tavsiye|öneri`),
		regexp.MustCompile(`nasıl bir yol`),
	},
	domain.IntentCase: {
		regexp.MustCompile(`davamda|mahkemede`),
		regexp.MustCompile(`benim durum|durumumda`),
		regexp.MustCompile(`somut olay`),
	},
	domain.IntentPrecedent: {
		regexp.MustCompile(`emsal karar`),
		regexp.MustCompile(`yargıtay|danıştay`),
		regexp.MustCompile(`içtihat`),
	},
	domain.IntentLegislation: {
		regexp.MustCompile(`sayılı kanun`),
		regexp.MustCompile(`kanun.{0,6} madde`),
		regexp.MustCompile(`yönetmelik metni`),
	},
}

// intentOrder fixes iteration order so secondary intent selection is
// deterministic.
var intentOrder = []domain.Intent{
	domain.IntentDefinition,
	domain.IntentProcedure,
	domain.IntentRights,
	domain.IntentObligation,
	domain.IntentPenalty,
	domain.IntentDocument,
	domain.IntentTimeline,
	domain.IntentCost,
	domain.IntentAdvice,
	domain.IntentCase,
	domain.IntentPrecedent,
	domain.IntentLegislation,
}

var (
	procedureWords  = []string{"nasıl", "başvuru", "süreç", "adım", "prosedür", "işlem sırası"}
	analyticalWords = []string{"karşılaştır", "fark", "analiz", "değerlendir", "mukayese"}
	lookupWords     = []string{"sayılı kanun", "madde metni", "yönetmelik metni", "kanun numarası"}

	problemWords  = []string{"sorun", "mağdur", "çıkarıldım", "haksız", "itiraz", "kaybettim", "edilmedi", "ödenmedi"}
	documentWords = []string{"dilekçe", "sözleşme hazırla", "form", "ihtarname"}
	verifyWords   = []string{"doğru mu", "geçerli mi", "yasal mı", "mümkün mü"}

	criticalWords = []string{"acil", "hemen", "bugün", "tutuklu", "gözaltı"}
	highWords     = []string{"yarın", "ivedi", "son gün", "süre doluyor", "tebligat geldi"}
	lowWords      = []string{"merak", "genel olarak", "bilgi amaçlı", "ileride"}

	questionWords = []string{"nasıl", "nedir", "ne", "hangi", "neden", "kim", "nerede", "kaç"}

	conceptConnectors = []string{" ve ", "ayrıca", "hem de", "aynı zamanda", "ile birlikte"}
	advancedWords     = []string{"karşılaştır", "analiz", "değerlendir", "yorumla", "içtihat", "mukayese"}
)

// contextRule applies a domain-pair disambiguation adjustment. These rules
// are the difference between the two most common real-world
// misclassifications: administrative vs criminal penalties and tourism
// licensing vs general commerce.
type contextRule func(query string) (delta float64, matches int)

var domainContextRules = map[string][]contextRule{
	"İş Hukuku": {
		func(q string) (float64, int) {
			score, matches := 0.0, 0
			for _, w := range []string{"işçi", "kıdem", "tazminat", "çalışan", "işveren", "iş"} {
				if strings.Contains(q, w) {
					score++
					matches++
				}
			}
			return score, matches
		},
		func(q string) (float64, int) {
			if strings.Contains(q, "kıdem") && strings.Contains(q, "tazminat") {
				return 3.0, 1
			}
			return 0, 0
		},
	},
	"İdare Hukuku": {
		func(q string) (float64, int) {
			if !strings.Contains(q, "ceza") {
				return 0, 0
			}
			for _, w := range []string{"disiplin", "personel", "kamu"} {
				if strings.Contains(q, w) {
					return 1.0, 1
				}
			}
			return 0, 0
		},
	},
	"Ceza Hukuku": {
		func(q string) (float64, int) {
			if strings.Contains(q, "disiplin") {
				return -1.0, 0
			}
			return 0, 0
		},
	},
	"Turizm Hukuku": {
		func(q string) (float64, int) {
			if strings.Contains(q, "otel") && (strings.Contains(q, "belgesi") || strings.Contains(q, "işletme")) {
				return 1.0, 1
			}
			return 0, 0
		},
	},
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func countContained(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}
