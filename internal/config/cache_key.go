package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizTopicKey returns the cache key for the generated quiz of a lesson topic
func (r *CacheKeyStruct) QuizTopicKey(topic string, count int) string {
	return fmt.Sprintf("quiz:%d:%s", count, topic)
}

var CacheKey = NewCacheKeyStruct()
