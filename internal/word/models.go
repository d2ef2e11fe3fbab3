package word

import "go.mongodb.org/mongo-driver/bson/primitive"

// Word is the persisted vocabulary entry stored in the "words" collection.
// Only Origin and Translation are set by the web API; the remaining fields are
// filled out-of-band (see cmd/wordimport).
type Word struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Origin      string             `json:"origin" bson:"origin"`
	Translation string             `json:"translation" bson:"translation"`
	Phonetic    string             `json:"phonetic,omitempty" bson:"phonetic,omitempty"`
	Definitions []PartOfSpeech     `json:"definitions,omitempty" bson:"definitions,omitempty"`
	ImgURL      string             `json:"imgUrl,omitempty" bson:"imgUrl,omitempty"`
}

// PartOfSpeech groups the definitions sharing one part of speech.
type PartOfSpeech struct {
	PartOfSpeech string       `json:"partOfSpeech" bson:"partOfSpeech"`
	Definitions  []Definition `json:"definitions" bson:"definitions"`
}

type Definition struct {
	Definition string `json:"definition" bson:"definition"`
	Example    string `json:"example,omitempty" bson:"example,omitempty"`
}

// Input is the allow-list of fields accepted from a word submission.
type Input struct {
	Origin      string `json:"origin"`
	Translation string `json:"translation"`
}

// Examples returns the definitions of the group that carry an example sentence.
func (p PartOfSpeech) Examples() []Definition {
	out := make([]Definition, 0, len(p.Definitions))
	for _, d := range p.Definitions {
		if d.Example != "" {
			out = append(out, d)
		}
	}
	return out
}
