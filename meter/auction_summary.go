// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"
	"math/big"
	"strings"
)

// RoundSummary records the totals of one closed window.
type RoundSummary struct {
	Round         uint64
	PoolAmount    *big.Int
	TotalDeposits *big.Int
	EndTime       uint64
}

func (r *RoundSummary) ToString() string {
	return fmt.Sprintf("RoundSummary(round=%v, pool=%v, totalDeposits=%v, endTime=%v)",
		r.Round, amountOrZero(r.PoolAmount).String(), amountOrZero(r.TotalDeposits).String(), r.EndTime)
}

type RoundSummaryList struct {
	Summaries []*RoundSummary
}

func NewRoundSummaryList(summaries []*RoundSummary) *RoundSummaryList {
	if summaries == nil {
		summaries = make([]*RoundSummary, 0)
	}
	return &RoundSummaryList{Summaries: summaries}
}

func (l *RoundSummaryList) Get(round uint64) *RoundSummary {
	for _, s := range l.Summaries {
		if s.Round == round {
			return s
		}
	}
	return nil
}

// Add appends summary, dropping the oldest entries beyond AUCTION_MAX_SUMMARIES.
func (l *RoundSummaryList) Add(summary *RoundSummary) {
	summaries := append(l.Summaries, summary)
	if n := len(summaries); n > AUCTION_MAX_SUMMARIES {
		summaries = summaries[n-AUCTION_MAX_SUMMARIES:]
	}
	l.Summaries = summaries
}

func (l *RoundSummaryList) Count() int {
	return len(l.Summaries)
}

func (l *RoundSummaryList) Last() *RoundSummary {
	if len(l.Summaries) > 0 {
		return l.Summaries[len(l.Summaries)-1]
	}
	return nil
}

func (l *RoundSummaryList) ToString() string {
	if l == nil || len(l.Summaries) == 0 {
		return "RoundSummaryList (size:0)"
	}
	s := []string{fmt.Sprintf("RoundSummaryList (size:%v) {", len(l.Summaries))}
	for i, c := range l.Summaries {
		s = append(s, fmt.Sprintf("  %d.%v", i, c.ToString()))
	}
	s = append(s, "}")
	return strings.Join(s, "\n")
}
