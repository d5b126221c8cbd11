package emotion

// Category is a detected emotion class.
type Category string

const (
	Happy     Category = "happy"
	Sad       Category = "sad"
	Angry     Category = "angry"
	Anxious   Category = "anxious"
	Stressed  Category = "stressed"
	Confused  Category = "confused"
	Neutral   Category = "neutral"
	Motivated Category = "motivated"
)

// Categories lists every category in declaration order. Score ties between
// categories are broken by this order, so it is part of the contract.
var Categories = []Category{Happy, Sad, Angry, Anxious, Stressed, Confused, Neutral, Motivated}

// Intensity is how strongly an emotion is expressed.
type Intensity string

const (
	Low    Intensity = "low"
	Medium Intensity = "medium"
	High   Intensity = "high"
)

// Detection method identifiers, highest-priority layer that contributed wins.
const (
	MethodRuleBased  = "rule_based"
	MethodSentiment  = "sentiment"
	MethodClassifier = "advanced_classifier"
)

// Score is one category's contribution to a result.
type Score struct {
	Score     float64   `json:"score"`
	Intensity Intensity `json:"intensity"`
}

// Sentiment is a polarity/subjectivity pair.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`     // -1..1
	Subjectivity float64 `json:"subjectivity"` // 0..1
}

// Result is a single classification outcome. Created fresh per call, never
// mutated after Detect returns.
type Result struct {
	Primary          Category           `json:"primary_emotion"`
	PrimaryIntensity Intensity          `json:"primary_intensity"`
	Confidence       float64            `json:"confidence"`
	AllEmotions      map[Category]Score `json:"all_emotions"`
	Sentiment        Sentiment          `json:"sentiment"`
	Method           string             `json:"method_used"`
}

// Record is a stored classification, one row per analyzed text.
type Record struct {
	ID          string
	OwnerID     string
	Source      string // "chat" or "journal"
	Category    Category
	Intensity   Intensity
	Confidence  float64
	CreatedAtMS int64
}
