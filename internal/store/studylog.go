package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ChatTurnRecord is one locally logged chat turn.
type ChatTurnRecord struct {
	SessionID string
	Timestamp time.Time
	Role      string
	Content   string
	IsError   bool
}

// QuizAttemptRecord is one locally logged graded quiz.
type QuizAttemptRecord struct {
	SessionID      string
	Timestamp      time.Time
	QuizID         string
	Score          float64
	CorrectAnswers int
	TotalQuestions int
}

// StudyLog is the append/read interface for the local study log.
type StudyLog interface {
	AppendChatTurn(ctx context.Context, rec ChatTurnRecord) error
	AppendQuizAttempt(ctx context.Context, rec QuizAttemptRecord) error
	RecentChatTurns(ctx context.Context, limit int) ([]ChatTurnRecord, error)
	RecentQuizAttempts(ctx context.Context, limit int) ([]QuizAttemptRecord, error)
}

type studyLog struct {
	db *sql.DB
}

var _ StudyLog = (*studyLog)(nil)

func (l *studyLog) AppendChatTurn(ctx context.Context, rec ChatTurnRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO chat_turns (session_id, ts, role, content, is_error) VALUES (?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Timestamp, rec.Role, rec.Content, rec.IsError,
	)
	if err != nil {
		return fmt.Errorf("append chat turn: %w", err)
	}
	return nil
}

func (l *studyLog) AppendQuizAttempt(ctx context.Context, rec QuizAttemptRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (session_id, ts, quiz_id, score, correct_answers, total_questions)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Timestamp, rec.QuizID, rec.Score, rec.CorrectAnswers, rec.TotalQuestions,
	)
	if err != nil {
		return fmt.Errorf("append quiz attempt: %w", err)
	}
	return nil
}

func (l *studyLog) RecentChatTurns(ctx context.Context, limit int) ([]ChatTurnRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT session_id, ts, role, content, is_error
		 FROM chat_turns ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query chat turns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ChatTurnRecord
	for rows.Next() {
		var rec ChatTurnRecord
		if err := rows.Scan(&rec.SessionID, &rec.Timestamp, &rec.Role, &rec.Content, &rec.IsError); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (l *studyLog) RecentQuizAttempts(ctx context.Context, limit int) ([]QuizAttemptRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT session_id, ts, quiz_id, score, correct_answers, total_questions
		 FROM quiz_attempts ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []QuizAttemptRecord
	for rows.Next() {
		var rec QuizAttemptRecord
		if err := rows.Scan(&rec.SessionID, &rec.Timestamp, &rec.QuizID, &rec.Score, &rec.CorrectAnswers, &rec.TotalQuestions); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
