// Package procvars extracts structured procedural variables from
// free-text colonoscopy reports with deterministic keyword/regex
// heuristics. It is independent of the cleanliness classification:
// matchers run over the full report text, every matcher is a pure
// function of the normalized text, and "not determinable" is always an
// explicit result rather than a guess.
package procvars

import (
	"regexp"
	"strconv"
	"strings"
)

// Flag is a tri-state extraction result. Unknown means the text gave
// no usable evidence either way.
type Flag int

const (
	FlagUnknown Flag = iota
	FlagNo
	FlagYes
)

func (f Flag) String() string {
	switch f {
	case FlagNo:
		return "0"
	case FlagYes:
		return "1"
	}
	return ""
}

// Bleeding grades post-polypectomy bleeding.
type Bleeding int

const (
	BleedingUnknown Bleeding = iota
	BleedingNone
	BleedingSuspected
	BleedingPresent
)

func (b Bleeding) String() string {
	switch b {
	case BleedingNone:
		return "0"
	case BleedingSuspected:
		return "1"
	case BleedingPresent:
		return "2"
	}
	return ""
}

// SizeBucket classifies the largest detected polyp size. Boundaries
// are closed on the left: exactly 5 mm is Bucket5to9, exactly 10 mm is
// Bucket10Plus.
type SizeBucket string

const (
	BucketNone   SizeBucket = ""
	BucketUnder5 SizeBucket = "<5 mm"
	Bucket5to9   SizeBucket = "5–9 mm"
	Bucket10Plus SizeBucket = "≥10 mm"
)

// bucketSize maps a size in millimeters to its bucket.
func bucketSize(mm float64) SizeBucket {
	switch {
	case mm < 5:
		return BucketUnder5
	case mm < 10:
		return Bucket5to9
	default:
		return Bucket10Plus
	}
}

// Method is the polypectomy technique detected in the report.
type Method string

const (
	MethodBiopsyForceps Method = "biopsy forceps"
	MethodColdSnare     Method = "cold snare"
	MethodHotSnare      Method = "hot snare"
	MethodEMR           Method = "EMR"
	MethodESD           Method = "ESD"
	MethodNotRemoved    Method = "not removed"
	MethodUnknown       Method = "unknown"
)

// Record is the structured bag of variables extracted from one report.
type Record struct {
	CecalIntubation    Flag
	IlealIntubation    Flag
	PolypPresent       bool
	PolypCount         Count
	LargestPolypSizeMM float64
	SizeFound          bool
	SizeBucket         SizeBucket
	Locations          []string
	PolypectomyMethod  Method
	Bleeding           Bleeding
	HemoclipApplied    Flag
}

// Columns lists the derived output columns in their fixed order.
func Columns() []string {
	return []string{
		"cecal_intubation",
		"ileal_intubation",
		"polyp_present",
		"polyp_count",
		"largest_polyp_size_mm",
		"largest_polyp_size_bucket",
		"polyp_locations",
		"polypectomy_method",
		"post_polypectomy_bleeding",
		"hemoclip_applied",
	}
}

// Values renders the record as output cells, index-aligned with
// Columns. Unknown values render as empty cells.
func (r Record) Values() []string {
	present := "0"
	if r.PolypPresent {
		present = "1"
	}
	size := ""
	if r.SizeFound {
		size = strconv.FormatFloat(r.LargestPolypSizeMM, 'f', -1, 64)
	}
	return []string{
		r.CecalIntubation.String(),
		r.IlealIntubation.String(),
		present,
		r.PolypCount.String(),
		size,
		string(r.SizeBucket),
		strings.Join(r.Locations, "|"),
		string(r.PolypectomyMethod),
		r.Bleeding.String(),
		r.HemoclipApplied.String(),
	}
}

// Extract runs all matchers over the report text in a fixed category
// order. It is total: any input, including empty text, yields a
// Record with unknowns where nothing was determinable.
func Extract(text string) Record {
	t := normalize(text)
	var rec Record
	rec.CecalIntubation, rec.IlealIntubation = extractIntubation(t)
	rec.PolypPresent = extractPolypPresence(t)
	rec.PolypCount = extractPolypCount(t, rec.PolypPresent)
	rec.LargestPolypSizeMM, rec.SizeFound = extractLargestSize(t)
	if rec.SizeFound {
		rec.SizeBucket = bucketSize(rec.LargestPolypSizeMM)
	}
	rec.Locations = extractLocations(t)
	rec.PolypectomyMethod = extractMethod(t)
	rec.Bleeding = extractBleeding(t)
	rec.HemoclipApplied = extractHemoclip(t)
	return rec
}

// normalize folds Turkish characters, lowercases and collapses
// whitespace. The cleanliness classifier has its own (stricter)
// normalizer; this one matches what the extraction patterns expect.
func normalize(s string) string {
	// Fold before lowercasing: ToLower turns İ into i plus a combining
	// dot, which would slip past the replacer.
	replacer := strings.NewReplacer(
		"ı", "i", "İ", "i",
		"ş", "s", "Ş", "s",
		"ğ", "g", "Ğ", "g",
		"ü", "u", "Ü", "u",
		"ö", "o", "Ö", "o",
		"ç", "c", "Ç", "c",
	)
	s = replacer.Replace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

var (
	cecalPos = compileAll(
		`cekuma (ulasildi|ilerlenildi|gelindi|girildi)`,
		`cekuma kadar ilerlen`,
		`cecum (reached|intubated)`,
		`cecal intubation (achieved|successful)`,
	)
	cecalNeg = compileAll(
		`cekuma (ulasilamadi|gidilemedi|ilerlenemedi)`,
		`cec(um|al) (not reached|not intubated|could not be reached)`,
	)
	ilealPos = compileAll(
		`terminal ileum (lumen|mukoza)?(si)? ?normal(di)?`,
		`ileuma (ulasildi|girildi|ilerlenildi)`,
		`ileal (intubation|exam(in(ed|ation))? completed)`,
	)
	ilealNeg = compileAll(
		`ileuma (ulasilamadi|girilemedi|ilerlenemedi)`,
		`ileal intubation (not achieved|failed|unsuccessful)`,
	)

	polypPos = compileAll(
		`\bpolip\b`,
		`polipo?id`,
		`adenom`,
		`lezyon (goruldu|mevcut|izlendi|saptandi)`,
		`polyp|adenoma`,
	)
	polypNeg = compileAll(
		`polip (gorulmedi|saptanmadi|izlenmedi|yok)`,
		`no (polyp|adenoma)`,
	)

	countDigit = regexp.MustCompile(`(\d+)\s*(adet\s*)?polip`)
	sizePat    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-xX×]?\s*(\d+(?:\.\d+)?)?\s*mm`)

	bleedingNo        = regexp.MustCompile(`kanama (yok|izlenmedi|saptanmadi)|no bleeding`)
	bleedingPresent   = regexp.MustCompile(`(aktif )?kanama (mevcut|izlendi|saptandi)|active bleeding|spurting|oozing`)
	bleedingSuspected = regexp.MustCompile(`kanama supheli|suspected bleeding`)

	hemoclipYes = regexp.MustCompile(`hemoklip|hemoclip|clip uygul`)
	hemoclipNo  = regexp.MustCompile(`klip uygulanmadi|no clip`)
)

// countWords maps spelled-out counts to numbers; multiple/coklu is a
// conventional floor of 3. Order is fixed for determinism.
var countWords = []struct {
	word string
	n    int
}{
	{"bir", 1}, {"iki", 2}, {"uc", 3}, {"dort", 4}, {"bes", 5},
	{"alti", 6}, {"yedi", 7}, {"sekiz", 8}, {"dokuz", 9},
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9},
	{"multiple", 3}, {"coklu", 3},
}

var countWordPatterns = compileCountWordPatterns()

func compileCountWordPatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(countWords))
	for i, cw := range countWords {
		out[i] = regexp.MustCompile(`\b` + cw.word + `\b\s*(adet\s*)?polip`)
	}
	return out
}

// locationPatterns keeps the canonical reporting order.
var locationPatterns = []struct {
	name string
	pats []*regexp.Regexp
}{
	{"cecum", compileAll(`\bcekum\b`, `\bcecum\b`)},
	{"right", compileAll(`\bsag\b`, `\bright( colon)?\b`)},
	{"transverse", compileAll(`\btransvers\b`, `\btransverse\b`)},
	{"left", compileAll(`\bsol\b`, `\bleft( colon)?\b`)},
	{"sigmoid", compileAll(`\bsigmoid\b`)},
	{"rectum", compileAll(`\brektum\b`, `\brectum\b`)},
	{"rectosigmoid", compileAll(`rektosigmoid`, `rectosigmoid`)},
	{"ileum", compileAll(`\bileum\b`)},
	{"multifocal", compileAll(`multifokal|multiple sites|diffuse`)},
}

var methodPatterns = []struct {
	method Method
	pats   []*regexp.Regexp
}{
	{MethodBiopsyForceps, compileAll(`biyopsi pensi`, `biopsy forceps`)},
	{MethodColdSnare, compileAll(`soguk snare`, `cold snare`)},
	{MethodHotSnare, compileAll(`sicak snare`, `hot snare`)},
	{MethodEMR, compileAll(`\bemr\b`, `mukozal rezeksiyon`)},
	{MethodESD, compileAll(`\besd\b`, `submukozal diseksiyon`)},
	{MethodNotRemoved, compileAll(`cikartilmadi|eksizyon yapilmadi|remove edilmedi|not removed`)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func anyMatch(pats []*regexp.Regexp, t string) bool {
	for _, p := range pats {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}

// extractIntubation reads cecal and ileal intubation flags. Negative
// evidence is checked after positive so an explicit failure statement
// wins over shorthand noise.
func extractIntubation(t string) (Flag, Flag) {
	cecal, ileal := FlagUnknown, FlagUnknown
	if anyMatch(cecalPos, t) {
		cecal = FlagYes
	}
	if anyMatch(cecalNeg, t) {
		cecal = FlagNo
	}
	if anyMatch(ilealPos, t) {
		ileal = FlagYes
	}
	if anyMatch(ilealNeg, t) {
		ileal = FlagNo
	}
	return cecal, ileal
}

func extractPolypPresence(t string) bool {
	if anyMatch(polypNeg, t) {
		return false
	}
	return anyMatch(polypPos, t)
}

func extractPolypCount(t string, present bool) Count {
	if !present {
		return CountAbsent()
	}
	if m := countDigit.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return CountOf(n)
		}
	}
	for i, pat := range countWordPatterns {
		if pat.MatchString(t) {
			return CountOf(countWords[i].n)
		}
	}
	return CountPresentUnknown()
}

// extractLargestSize finds every "N mm" or "NxM mm" mention and
// returns the largest value.
func extractLargestSize(t string) (float64, bool) {
	best := 0.0
	found := false
	for _, m := range sizePat.FindAllStringSubmatch(t, -1) {
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			v, err := strconv.ParseFloat(g, 64)
			if err != nil {
				continue
			}
			if !found || v > best {
				best = v
			}
			found = true
		}
	}
	return best, found
}

func extractLocations(t string) []string {
	var hits []string
	for _, loc := range locationPatterns {
		if anyMatch(loc.pats, t) {
			hits = append(hits, loc.name)
		}
	}
	return hits
}

func extractMethod(t string) Method {
	for _, m := range methodPatterns {
		if anyMatch(m.pats, t) {
			return m.method
		}
	}
	// Infer from loose snare/forceps mentions when no explicit method
	// phrase was written.
	if strings.Contains(t, "snare") {
		if strings.Contains(t, "cold") || strings.Contains(t, "soguk") {
			return MethodColdSnare
		}
		if strings.Contains(t, "hot") || strings.Contains(t, "sicak") || strings.Contains(t, "cauter") {
			return MethodHotSnare
		}
		return MethodUnknown
	}
	if strings.Contains(t, "forceps") || strings.Contains(t, "pensi") {
		return MethodBiopsyForceps
	}
	return MethodUnknown
}

func extractBleeding(t string) Bleeding {
	if bleedingNo.MatchString(t) {
		return BleedingNone
	}
	if bleedingPresent.MatchString(t) {
		return BleedingPresent
	}
	if bleedingSuspected.MatchString(t) {
		return BleedingSuspected
	}
	return BleedingUnknown
}

// extractHemoclip checks the negated form first: "hemoklip
// uygulanmadi" contains the positive keyword as a substring.
func extractHemoclip(t string) Flag {
	if hemoclipNo.MatchString(t) {
		return FlagNo
	}
	if hemoclipYes.MatchString(t) {
		return FlagYes
	}
	return FlagUnknown
}
