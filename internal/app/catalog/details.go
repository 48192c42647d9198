package catalog

import "github.com/abayate/earthwise/internal/domain"

// details is the per-task descriptive library shown on the task and
// dashboard pages.
var details = map[string]domain.TaskDetails{
	// Health
	"yoga-20": {
		About:       "A 20-minute bodyweight yoga flow done at home.",
		Health:      "Improves flexibility and mobility, reduces stress via parasympathetic activation, and supports core strength and balance.",
		Environment: "Home bodyweight practice has near-zero energy use and avoids travel emissions to a gym.",
		Tips:        []string{"Use a mat or towel; focus on breath cadence (4–6s inhales/exhales)."},
	},
	"strength-15": {
		About:       "Quick 15-minute compound strength set (push/pull/legs).",
		Health:      "Builds lean mass, supports bone density, improves insulin sensitivity, and raises resting metabolic rate.",
		Environment: "Minimal or no equipment; no electricity; tiny footprint compared with cardio machines.",
		Tips:        []string{"Pick 3 moves: squats, pushups, rows. 45s work / 15s rest × 3 rounds."},
	},
	"intervals-10": {
		About:       "10 minutes of intervals (e.g., brisk walk/jog sprints).",
		Health:      "Time-efficient VO₂ and cardiovascular gains, better blood pressure and mitochondrial function.",
		Environment: "No powered equipment; can be done outdoors, encouraging active transport habits.",
		Tips:        []string{"Try 30s hard / 30s easy × 10; warm up 1–2 minutes first."},
	},
	"healthy-breakfast": {
		About:       "Protein + fruit (e.g., eggs/Greek yogurt + berries).",
		Health:      "Steadier glucose, reduced cravings, better concentration; protein supports recovery.",
		Environment: "Choosing seasonal, plant-forward sides can lower meal emissions compared with ultra-processed options.",
		Tips:        []string{"Add whole-grain carbs and fiber; prep the night before."},
	},
	"steps-8000": {
		About:       "Accumulate at least 8,000 steps across the day.",
		Health:      "Associated with lower all-cause mortality and better cardiometabolic health; breaks up sedentary time.",
		Environment: "Short errand walks can replace some car trips, indirectly reducing local emissions.",
		Tips:        []string{"Park farther, take stairs, do 5-minute movement breaks each hour."},
	},
	"sleep-8h": {
		About:       "Target ~8 hours of consistent, high-quality sleep.",
		Health:      "Improves memory consolidation, mood, hormonal balance, and immune function; enhances training recovery.",
		Environment: "No direct environmental impact; well-rested people often make better day-to-day energy choices.",
		Tips:        []string{"Regular bed/wake times; dim screens 60 minutes before bed."},
	},
	"screen-breaks": {
		About:       "Take 1–2 minute breaks from screens each hour.",
		Health:      "Reduces eye strain and musculoskeletal tension; helps posture and focus.",
		Environment: "Tiny decrease in device energy use; also encourages ambient-light usage awareness.",
		Tips:        []string{"Follow 20-20-20: every 20 min, look 20 ft away for 20 seconds."},
	},
	"journaling-5": {
		About:       "Reflective journaling for 5 minutes.",
		Health:      "Supports stress regulation and goal clarity; evidence for improved resilience and mood.",
		Environment: "No direct effect; paper choice and digital note habits can reduce waste.",
		Tips:        []string{"Use 3 prompts: What went well? What was hard? What's next?"},
	},
	"breathing-3": {
		About:       "3 minutes of slow diaphragmatic breathing.",
		Health:      "Down-regulates stress response, lowers heart rate, improves perceived calm.",
		Environment: "No impact; can reduce unnecessary screen time on devices.",
		Tips:        []string{"Try 4-4-6: inhale 4, hold 4, exhale 6 (nose if comfortable)."},
	},
	"posture-x3": {
		About:       "Three posture checks spread through the day.",
		Health:      "Reduces neck/shoulder strain and headaches; improves breathing efficiency.",
		Environment: "No impact.",
		Tips:        []string{"Stack ears over shoulders; set phone reminders for check-ins."},
	},

	// Eco
	"meatless-meal": {
		About:       "Choose a plant-forward meal for one sitting.",
		Health:      "Higher fiber, micronutrients, and unsaturated fats; supports heart and gut health.",
		Environment: "Plant-based meals typically have substantially lower greenhouse gas emissions than meat-heavy meals.",
		Tips:        []string{"Build a bowl: grain + beans + veggies + sauce; keep frozen veggies handy."},
	},
	"cold-wash-laundry": {
		About:       "Run laundry on cold.",
		Health:      "Gentler on fabrics and dyes (less skin irritation from dye bleed).",
		Environment: "Saves the energy used to heat water; cold cycles can cut washer energy dramatically.",
		Tips:        []string{"Use liquid detergent designed for cold; full loads only."},
	},
	"short-shower-5": {
		About:       "Cap showers at ~5 minutes.",
		Health:      "Less skin dryness; preserves natural oils.",
		Environment: "Saves water and the energy required to heat it.",
		Tips:        []string{"Play a 5-minute song; install a low-flow showerhead."},
	},
	"unplug-standby": {
		About:       "Unplug or switch off idle electronics.",
		Health:      "Less cable clutter and heat; marginally improves indoor comfort.",
		Environment: "Cuts standby (\"vampire\") power draw to reduce electricity use.",
		Tips:        []string{"Use a power strip with a single off switch."},
	},
	"thermostat-1deg": {
		About:       "Adjust thermostat ±1°F (±0.5°C).",
		Health:      "Still comfortable; supports thermal habituation.",
		Environment: "Every degree can save heating/cooling energy over time.",
		Tips:        []string{"Pair with sealing drafts and wearing layers."},
	},
	"reusable-mug-bottle": {
		About:       "Bring a reusable mug/bottle instead of disposables.",
		Health:      "Promotes regular hydration; avoids potential microplastics from some disposables.",
		Environment: "Reduces single-use waste and production energy.",
		Tips:        []string{"Keep a spare cup/bottle in bag or car."},
	},
	"recycle-sort": {
		About:       "Sort recyclables properly (follow local rules).",
		Health:      "Cleaner waste streams can reduce local air and soil contamination over time.",
		Environment: "Improves material recovery; lowers raw-material extraction and landfill burden.",
		Tips:        []string{"Rinse containers lightly; don't bag recyclables unless your MRF requires it."},
	},
	"compost-scraps": {
		About:       "Collect food scraps for composting.",
		Health:      "Can support home gardening (nutrient-dense soil for fresh produce).",
		Environment: "Diverts organics from landfill, reducing methane emissions.",
		Tips:        []string{"Use a countertop bin; freeze scraps to prevent odors."},
	},
	"public-transit-carpool": {
		About:       "Use transit or carpool for a trip.",
		Health:      "Often leads to more walking, which boosts daily activity.",
		Environment: "Fewer single-occupancy vehicle miles means lower per-person emissions.",
		Tips:        []string{"Batch errands; coordinate rides with coworkers or classmates."},
	},
	"no-single-use-plastic": {
		About:       "Avoid single-use plastics for the day.",
		Health:      "Reduces potential microplastics exposure from certain packaging.",
		Environment: "Cuts plastic waste and upstream production emissions.",
		Tips:        []string{"Carry utensil kit and tote; choose products with minimal packaging."},
	},
}
