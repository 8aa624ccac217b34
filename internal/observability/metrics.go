package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	xpGranted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "progress",
		Name:      "xp_granted_total",
		Help:      "Total experience points granted to the profile.",
	})
	levelUps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "progress",
		Name:      "level_ups_total",
		Help:      "Number of times the profile crossed a level boundary.",
	})
	achievementsUnlocked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "progress",
		Name:      "achievements_unlocked_total",
		Help:      "Achievements unlocked, by achievement id.",
	}, []string{"achievement"})
	purchases = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "store",
		Name:      "purchases_total",
		Help:      "Store purchase attempts, by result.",
	}, []string{"result"})
	coinsSpent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "store",
		Name:      "coins_spent_total",
		Help:      "Coins deducted by successful purchases.",
	})
	workoutsCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "session",
		Name:      "workouts_completed_total",
		Help:      "Workout sessions appended to history, by origin.",
	}, []string{"origin"})
	decodeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitquest",
		Subsystem: "storage",
		Name:      "decode_failures_total",
		Help:      "Stored values that could not be read or decoded and fell back to a default.",
	})
)

func init() {
	prometheus.MustRegister(xpGranted, levelUps, achievementsUnlocked, purchases, coinsSpent, workoutsCompleted, decodeFailures)
}

// RecordXP adds a granted XP amount.
func RecordXP(amount int) {
	if amount <= 0 {
		return
	}
	xpGranted.Add(float64(amount))
}

// RecordLevelUp counts a level boundary crossing.
func RecordLevelUp() {
	levelUps.Inc()
}

// RecordAchievement counts an achievement unlock.
func RecordAchievement(id string) {
	achievementsUnlocked.WithLabelValues(id).Inc()
}

// RecordPurchase counts a purchase attempt. cost is only added to the spent
// total when the purchase succeeded.
func RecordPurchase(result string, cost int) {
	purchases.WithLabelValues(result).Inc()
	if result == "ok" && cost > 0 {
		coinsSpent.Add(float64(cost))
	}
}

// RecordWorkout counts a completed session.
func RecordWorkout(program bool) {
	origin := "free"
	if program {
		origin = "program"
	}
	workoutsCompleted.WithLabelValues(origin).Inc()
}

// RecordDecodeFailure counts a storage read that fell back to its default.
func RecordDecodeFailure() {
	decodeFailures.Inc()
}
