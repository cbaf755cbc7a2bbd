package lobby

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

func byRating(a, b WaitEntry) int { return cmp.Compare(a.Rating, b.Rating) }

// pairByRating sorts entries by rating and pairs neighbours. With an odd
// count one random entry sits the round out and is returned as benched.
func pairByRating(entries []WaitEntry, rng *rand.Rand) (pairs [][2]WaitEntry, benched []WaitEntry) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, byRating)
	if len(sorted)%2 == 1 {
		i := rng.IntN(len(sorted))
		benched = append(benched, sorted[i])
		sorted = slices.Delete(sorted, i, i+1)
	}
	for i := 0; i+1 < len(sorted); i += 2 {
		pairs = append(pairs, [2]WaitEntry{sorted[i], sorted[i+1]})
	}
	return pairs, benched
}

// squadRoster orders four entries into squad slots: attacker 1, attacker 2,
// defender 1, defender 2 (odd slots are side 1). The best and worst rated
// players form one team and the middle two the other. Which team takes
// side 1 and which member of each team attacks is chosen at random.
func squadRoster(four [4]WaitEntry, rng *rand.Rand) [4]WaitEntry {
	r := four
	slices.SortStableFunc(r[:], byRating)
	teamA := [2]WaitEntry{r[0], r[3]}
	teamB := [2]WaitEntry{r[1], r[2]}

	perm := rng.IntN(4)
	if perm&1 != 0 {
		teamA, teamB = teamB, teamA
	}
	if perm&2 != 0 {
		teamA[0], teamA[1] = teamA[1], teamA[0]
		teamB[0], teamB[1] = teamB[1], teamB[0]
	}
	return [4]WaitEntry{teamA[0], teamB[0], teamA[1], teamB[1]}
}
