// Package ranking orders submissions into a leaderboard. It is pure: ranks
// are always recomputed from the submissions themselves, so late
// verification changes are reflected without any stored rank state.
package ranking

import (
	"sort"

	tournamenttypes "github.com/ligue-mk8/timeattack-bot/app/modules/tournament/domain/types"
)

type best struct {
	entry tournamenttypes.LeaderboardEntry
}

// Standings computes the live leaderboard: rejected submissions are excluded,
// pending ones count but carry Verified=false. Entries are ordered by best
// time ascending; equal times rank the earlier submission first, and a
// same-instant tie falls back to user id so the order is total.
func Standings(subs []tournamenttypes.Submission) []tournamenttypes.LeaderboardEntry {
	perUser := make(map[tournamenttypes.UserID]*best)

	for _, sub := range subs {
		if sub.Status == tournamenttypes.VerificationRejected {
			continue
		}
		b, ok := perUser[sub.UserID]
		if !ok {
			perUser[sub.UserID] = &best{entry: tournamenttypes.LeaderboardEntry{
				UserID:       sub.UserID,
				BestTime:     sub.Time,
				AttemptCount: 1,
				Verified:     sub.Status == tournamenttypes.VerificationVerified,
				AchievedAt:   sub.SubmittedAt,
			}}
			continue
		}
		b.entry.AttemptCount++
		if sub.Time < b.entry.BestTime ||
			(sub.Time == b.entry.BestTime && sub.SubmittedAt.Before(b.entry.AchievedAt)) {
			b.entry.BestTime = sub.Time
			b.entry.Verified = sub.Status == tournamenttypes.VerificationVerified
			b.entry.AchievedAt = sub.SubmittedAt
		}
	}

	entries := make([]tournamenttypes.LeaderboardEntry, 0, len(perUser))
	for _, b := range perUser {
		entries = append(entries, b.entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.BestTime != b.BestTime {
			return a.BestTime < b.BestTime
		}
		if !a.AchievedAt.Equal(b.AchievedAt) {
			return a.AchievedAt.Before(b.AchievedAt)
		}
		return a.UserID < b.UserID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Final computes the standings announced at closure. Under the strict policy
// pending submissions are dropped before ranking; under the lenient policy
// the final board equals the live board.
func Final(subs []tournamenttypes.Submission, policy tournamenttypes.VerificationPolicy) []tournamenttypes.LeaderboardEntry {
	if policy != tournamenttypes.PolicyStrict {
		return Standings(subs)
	}
	verified := make([]tournamenttypes.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == tournamenttypes.VerificationVerified {
			verified = append(verified, sub)
		}
	}
	return Standings(verified)
}
