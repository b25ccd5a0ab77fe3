package domain

import (
	"fmt"
	"strings"
)

// for debug
func (p *Prediction) String() string {
	edited := "never"
	if p.LastEditedAt != nil {
		edited = p.LastEditedAt.String()
	}
	return fmt.Sprintf("[id:%s, thread_id:%s, author:%s, text:%s, created:%s, edited:%s]",
		p.Id, p.ThreadId, p.Author, p.Text, p.CreatedAt, edited)
}

func (t *Thread) String() string {
	return fmt.Sprintf("[id:%s, question:%s, creator:%s, open:%t, winners:[%s], created:%s]",
		t.Id, t.Question, t.Creator, t.IsOpen, strings.Join(t.WinningPredictionIds, ", "), t.CreatedAt)
}
