package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// StableQuestionID derives a deterministic identifier for a quiz question
// that predates per-question IDs. It hashes the question text, its position
// and the quiz ID, so re-reading the same quiz always yields the same IDs.
// Only used as a fallback when a snapshot row has no ID of its own.
func StableQuestionID(questionText string, index int, quizID string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%s", questionText, index, quizID)))
	return "q_" + hex.EncodeToString(sum[:])[:12]
}
