package usecase

import "github.com/hukukasistan/mevzuat-search/internal/core/domain"

// legalSynonyms is the static legal-term synonym dictionary. Lookup matches
// exactly and by substring containment in both directions.
var legalSynonyms = map[string][]string{
	// İş hukuku
	"tazminat": {"zarar karşılığı", "bedel"},
	"kıdem":    {"hizmet süresi"},
	"işçi":     {"çalışan", "emekçi"},
	"işveren":  {"çalıştıran", "patron"},
	"fesih":    {"sona erdirme", "sözleşmenin sonlandırılması"},
	"ücret":    {"maaş", "aylık"},
	"mesai":    {"çalışma süresi", "ek çalışma"},
	"ihbar":    {"bildirim", "önel"},
	"sendika":  {"işçi örgütü"},

	// Aile ve miras
	"boşanma": {"evliliğin sona ermesi", "ayrılık"},
	"nafaka":  {"geçim desteği"},
	"velayet": {"çocuğun bakımı"},
	"miras":   {"tereke", "kalıt"},
	"evlilik": {"nikah"},

	// Ceza
	"suç":   {"fiil", "kabahat"},
	"ceza":  {"yaptırım", "müeyyide"},
	"hapis": {"hürriyeti bağlayıcı ceza"},
	"dava":  {"yargılama", "duruşma"},
	"savcı": {"iddia makamı"},

	// Ticaret
	"şirket":  {"ortaklık", "firma"},
	"ticaret": {"ticari faaliyet"},
	"iflas":   {"ödeme aczi"},
	"sermaye": {"anapara"},
	"çek":     {"kıymetli evrak"},

	// Vergi
	"vergi":     {"mali yükümlülük"},
	"beyanname": {"beyan", "bildirim"},
	"matrah":    {"vergi tabanı"},
	"mükellef":  {"yükümlü"},
	"kdv":       {"katma değer vergisi"},

	// Turizm
	"otel":     {"konaklama tesisi", "turistik tesis"},
	"turizm":   {"turistik faaliyet"},
	"acenta":   {"seyahat işletmesi"},
	"pansiyon": {"konaklama"},

	// Sigorta
	"sigorta": {"güvence", "teminat"},
	"poliçe":  {"sigorta sözleşmesi"},
	"hasar":   {"zarar", "ziyan"},
	"prim":    {"sigorta bedeli"},

	// İcra
	"icra":  {"cebri takip"},
	"haciz": {"el koyma"},
	"borç":  {"yükümlülük"},

	// Taşınmaz
	"kira":          {"icar"},
	"tahliye":       {"boşaltma"},
	"tapu":          {"mülkiyet belgesi"},
	"kamulaştırma":  {"istimlak"},

	// Genel
	"kanun":      {"yasa", "mevzuat"},
	"yönetmelik": {"düzenleme", "tüzük"},
	"hak":        {"yetki", "talep"},
}

// domainContextualTerms maps domain name → concept substring → related search
// terms specific to that domain.
var domainContextualTerms = map[string]map[string][]string{
	"İş Hukuku": {
		"tazminat": {"kıdem tazminatı hesaplama", "ihbar süresi", "işe iade"},
		"fesih":    {"haklı fesih", "geçerli fesih"},
		"ücret":    {"asgari ücret", "fazla mesai ücreti"},
		"işçi":     {"işçi alacakları"},
	},
	"Medeni Hukuk": {
		"boşanma": {"anlaşmalı boşanma", "çekişmeli boşanma"},
		"miras":   {"saklı pay", "mirasçılık belgesi"},
		"nafaka":  {"yoksulluk nafakası", "iştirak nafakası"},
	},
	"Ceza Hukuku": {
		"ceza": {"hükmün açıklanmasının geri bırakılması", "erteleme"},
		"suç":  {"şikayet", "uzlaşma"},
	},
	"Ticaret Hukuku": {
		"şirket": {"ana sözleşme", "ticaret sicili"},
		"çek":    {"karşılıksız çek"},
	},
	"Vergi Hukuku": {
		"vergi":     {"vergi dairesi", "tahakkuk", "tahsilat"},
		"beyanname": {"beyan dönemi", "e-beyanname"},
	},
	"Turizm Hukuku": {
		"otel":   {"işletme belgesi", "tesis sınıflandırma"},
		"acenta": {"işletme ruhsatı"},
	},
	"İdare Hukuku": {
		"disiplin": {"savunma hakkı", "disiplin soruşturması"},
		"idari":    {"yürütmenin durdurulması", "iptal davası"},
	},
	"Sigorta Hukuku": {
		"sigorta": {"hasar dosyası", "rücu"},
	},
	"İcra ve İflas Hukuku": {
		"icra":  {"ödeme emri", "takibe itiraz"},
		"haciz": {"istihkak", "muhafaza"},
	},
	"Konut Hukuku": {
		"kira": {"kira bedeli", "tahliye davası"},
	},
	"Gayrimenkul Hukuku": {
		"tapu": {"tapu müdürlüğü", "devir işlemi"},
	},
}

// intentBoilerplateTerms always contribute when the given intent is detected.
var intentBoilerplateTerms = map[domain.Intent][]string{
	domain.IntentProcedure:  {"süreç", "işlem", "adımlar", "prosedür", "başvuru"},
	domain.IntentDefinition: {"tanım", "kavram", "açıklama"},
	domain.IntentRights:     {"hak", "talep", "koşullar"},
	domain.IntentPenalty:    {"yaptırım", "müeyyide"},
	domain.IntentTimeline:   {"süre", "zamanaşımı"},
	domain.IntentCost:       {"harç", "masraf"},
	domain.IntentDocument:   {"belge", "evrak"},
}

// morphSuffixes are appended blindly to every base term: accusative,
// genitive, dative, ablative and plural sets. No vowel-harmony check is
// performed; over-generation is an accepted recall/precision trade-off and
// the downstream search service tolerates non-words.
var morphSuffixes = []string{"ı", "i", "nın", "nin", "ya", "ye", "dan", "den", "lar", "ler"}

// genericLegalWords penalize a candidate term when it carries no other
// boosting signal.
var genericLegalWords = []string{"kanun", "hukuk", "madde", "fıkra"}
