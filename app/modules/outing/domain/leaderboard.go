package outingdomain

import "sort"

// BuildOutingLeaderboard aggregates per-group live scores into a single
// ranked leaderboard. Groups without a round id and players without a score
// entry for their group's round are skipped; missing data is not an error.
func BuildOutingLeaderboard(roster []OutingPlayer, groups []OutingGroup, liveScores LiveScores, format ScoringFormat) []LeaderboardEntry {
	players := make(map[PlayerID]OutingPlayer, len(roster))
	for _, p := range roster {
		players[p.ID] = p
	}

	entries := []LeaderboardEntry{}
	for _, g := range groups {
		if g.RoundID == nil {
			continue
		}
		roundScores, ok := liveScores[*g.RoundID]
		if !ok {
			continue
		}
		for _, pid := range g.PlayerIDs {
			score, ok := roundScores[pid]
			if !ok {
				continue
			}
			player, ok := players[pid]
			if !ok {
				continue
			}
			entries = append(entries, LeaderboardEntry{
				PlayerID:    pid,
				DisplayName: player.DisplayName,
				AvatarURL:   player.AvatarURL,
				GroupID:     g.ID,
				GroupName:   g.Name,
				GrossScore:  score.CurrentGross,
				NetScore:    score.CurrentNet,
				ScoreToPar:  score.ScoreToPar,
				Thru:        score.Thru,
				FormatScore: formatScore(score, format),
			})
		}
	}

	sortEntries(entries, format)
	assignPositions(entries, format)
	return entries
}

func formatScore(score LiveScoreEntry, format ScoringFormat) int {
	if format == FormatStableford {
		if score.StablefordPoints != nil {
			return *score.StablefordPoints
		}
		return 0
	}
	return score.CurrentNet
}

// sortEntries orders by the format's primary key; stroke play breaks primary
// ties on gross score for ordering purposes only.
func sortEntries(entries []LeaderboardEntry, format ScoringFormat) {
	if format == FormatStableford {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].FormatScore > entries[j].FormatScore
		})
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].NetScore != entries[j].NetScore {
			return entries[i].NetScore < entries[j].NetScore
		}
		return entries[i].GrossScore < entries[j].GrossScore
	})
}

// assignPositions applies competition ranking: an entry tied with its
// predecessor on the primary key inherits the predecessor's position, and the
// next distinct entry takes its 1-based index, skipping the ranks used up by
// the tie group. Gross score never participates in the tie check.
func assignPositions(entries []LeaderboardEntry, format ScoringFormat) {
	for i := range entries {
		if i == 0 {
			entries[i].Position = 1
			continue
		}
		if primaryKey(entries[i], format) == primaryKey(entries[i-1], format) {
			entries[i].Position = entries[i-1].Position
		} else {
			entries[i].Position = i + 1
		}
	}
}

func primaryKey(e LeaderboardEntry, format ScoringFormat) int {
	if format == FormatStableford {
		return e.FormatScore
	}
	return e.NetScore
}
