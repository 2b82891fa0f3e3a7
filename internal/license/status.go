// Package license classifica licenças pela data de vencimento e agrega os
// resultados para o painel. Tudo aqui é puro: nenhuma função altera a
// coleção recebida e "hoje" é sempre informado pelo chamador.
package license

import (
	"errors"
	"strings"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/models"
)

// WarningDays é a janela "a vencer", contada em dias corridos a partir de hoje.
const WarningDays = 30

const DateLayout = "2006-01-02"

var ErrUnknownState = errors.New("unknown license state")

type State string

const (
	Active  State = "ACTIVE"
	Warning State = "WARNING"
	Expired State = "EXPIRED"
)

// States lista os estados na ordem usada em relatórios e gráficos.
var States = []State{Active, Warning, Expired}

var labels = map[State]string{
	Active:  "Ativo",
	Warning: "A Vencer",
	Expired: "Vencido",
}

// Label devolve o rótulo exibido ao usuário.
func (s State) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// ParseState aceita a chave (ACTIVE, warning, ...) ou o rótulo ("A Vencer").
func ParseState(s string) (State, error) {
	s = strings.TrimSpace(s)
	for _, st := range States {
		if strings.EqualFold(s, string(st)) || strings.EqualFold(s, labels[st]) {
			return st, nil
		}
	}
	return "", ErrUnknownState
}

// ParseDate lê uma data YYYY-MM-DD como meia-noite UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// midnight descarta a hora, mantendo o dia civil do fuso de t.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify compara vencimento e hoje por dia civil:
// vencimento < hoje é Expired, vencimento <= hoje+30 é Warning, o resto Active.
func Classify(expiration, today time.Time) State {
	exp := midnight(expiration)
	t := midnight(today)
	threshold := t.AddDate(0, 0, WarningDays)

	switch {
	case exp.Before(t):
		return Expired
	case !exp.After(threshold):
		return Warning
	default:
		return Active
	}
}

// StateOf classifica uma licença armazenada. Vencimento ilegível conta como
// Expired para aparecer entre as pendências.
func StateOf(l models.License, today time.Time) State {
	exp, err := ParseDate(l.ExpirationDate)
	if err != nil {
		return Expired
	}
	return Classify(exp, today)
}

// DaysRemaining conta os dias corridos até o vencimento (negativo se vencida).
func DaysRemaining(expiration, today time.Time) int {
	// via Unix: time.Duration satura em ~292 anos
	return int((midnight(expiration).Unix() - midnight(today).Unix()) / 86400)
}

// DaysRemainingOf é DaysRemaining sobre a data armazenada; ok=false se ilegível.
func DaysRemainingOf(l models.License, today time.Time) (days int, ok bool) {
	exp, err := ParseDate(l.ExpirationDate)
	if err != nil {
		return 0, false
	}
	return DaysRemaining(exp, today), true
}
