package models

// TopicLabel pairs a topic model id with its display name.
type TopicLabel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TopicWordWeight is one salient term of a topic.
type TopicWordWeight struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}
