package models

// Record is one post as delivered by the loaders. Timestamp and Sentiment are
// kept raw; they are parsed during augmentation. Exports that label posts by
// display name set AssignedTopic, which takes precedence over TopicID.
type Record struct {
	ID            string `json:"id" dynamodbav:"id"`
	Party         string `json:"party" dynamodbav:"party"`
	Timestamp     string `json:"timestamp" dynamodbav:"timestamp"`
	Sentiment     string `json:"sentiment" dynamodbav:"sentiment"`
	TopicID       int    `json:"topic_id" dynamodbav:"topic_id"`
	AssignedTopic string `json:"assigned_topic,omitempty" dynamodbav:"assigned_topic,omitempty"`
}

// AugmentedRecord is a Record with the fields derived at load time.
type AugmentedRecord struct {
	Record
	Year      int       `json:"year"`
	Date      string    `json:"date"`
	TopicName string    `json:"topic_name"`
	Label     Sentiment `json:"label"`
}
