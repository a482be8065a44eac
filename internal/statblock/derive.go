package statblock

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KirkDiggler/rpg-forge/internal/entities"
)

var numbers = message.NewPrinter(language.English)

// AbilityModifier is floor((score-10)/2)
func AbilityModifier(score int) int {
	return int(math.Floor(float64(score-10) / 2))
}

// FormatModifier renders a signed bonus, "+0" or "-1"
func FormatModifier(m int) string {
	if m < 0 {
		return strconv.Itoa(m)
	}
	return "+" + strconv.Itoa(m)
}

// ProficiencyBonus is floor(CR/4)+2
func ProficiencyBonus(challengeRating float64) int {
	return int(math.Floor(challengeRating/4)) + 2
}

// AverageDice is the rounded-down average of XdY
func AverageDice(count, dieSize int) int {
	return count * (dieSize + 1) / 2
}

// AverageHitPoints is floor(n*(die+1)/2) + conMod*n
func AverageHitPoints(hitDice, dieSize, conMod int) int {
	return AverageDice(hitDice, dieSize) + conMod*hitDice
}

// DiceExpression renders "8d8 + 16", "8d8 - 8" or "8d8"
func DiceExpression(count, dieSize, modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf("%dd%d + %d", count, dieSize, modifier)
	case modifier < 0:
		return fmt.Sprintf("%dd%d - %d", count, dieSize, -modifier)
	default:
		return fmt.Sprintf("%dd%d", count, dieSize)
	}
}

// HitPoints renders "52 (8d8 + 16)" for a creature
func HitPoints(c *entities.Creature) string {
	die := c.Size.HitDie()
	conBonus := AbilityModifier(c.AbilityScores.Constitution) * c.HitDiceAmount
	avg := AverageHitPoints(c.HitDiceAmount, die, AbilityModifier(c.AbilityScores.Constitution))
	return fmt.Sprintf("%d (%s)", avg, DiceExpression(c.HitDiceAmount, die, conBonus))
}

// HitPointNotation is the dice notation for rolling a creature's hit points, "8d8+16"
func HitPointNotation(c *entities.Creature) string {
	die := c.Size.HitDie()
	conBonus := AbilityModifier(c.AbilityScores.Constitution) * c.HitDiceAmount
	switch {
	case conBonus > 0:
		return fmt.Sprintf("%dd%d+%d", c.HitDiceAmount, die, conBonus)
	case conBonus < 0:
		return fmt.Sprintf("%dd%d-%d", c.HitDiceAmount, die, -conBonus)
	default:
		return fmt.Sprintf("%dd%d", c.HitDiceAmount, die)
	}
}

var experience = map[float64]int{
	0: 10, 0.125: 25, 0.25: 50, 0.5: 100,
	1: 200, 2: 450, 3: 700, 4: 1100, 5: 1800,
	6: 2300, 7: 2900, 8: 3900, 9: 5000, 10: 5900,
	11: 7200, 12: 8400, 13: 10000, 14: 11500, 15: 13000,
	16: 15000, 17: 18000, 18: 20000, 19: 22000, 20: 25000,
	21: 33000, 22: 41000, 23: 50000, 24: 62000, 25: 75000,
	26: 90000, 27: 105000, 28: 120000, 29: 135000, 30: 155000,
}

// ExperiencePoints returns the XP award for a challenge rating, 0 when unknown
func ExperiencePoints(challengeRating float64) int {
	return experience[challengeRating]
}

// FormatChallengeRating renders fractional ratings as "1/8", "1/4", "1/2"
func FormatChallengeRating(cr float64) string {
	switch cr {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	default:
		return strconv.FormatFloat(cr, 'f', -1, 64)
	}
}

// Challenge renders "5 (1,800 XP)"
func Challenge(cr float64) string {
	return numbers.Sprintf("%s (%d XP)", FormatChallengeRating(cr), ExperiencePoints(cr))
}

// AttackBonus is proficiency plus the ability modifier
func AttackBonus(c *entities.Creature, ability entities.Ability) int {
	return ProficiencyBonus(c.ChallengeRating) + AbilityModifier(c.AbilityScores.Get(ability))
}

// SaveDC is 8 + proficiency + the ability modifier
func SaveDC(c *entities.Creature, ability entities.Ability) int {
	return 8 + AttackBonus(c, ability)
}

// PassivePerception is 10 plus the Perception bonus
func PassivePerception(c *entities.Creature) int {
	return 10 + skillBonus(c, entities.SkillPerception)
}

func skillBonus(c *entities.Creature, skill entities.Skill) int {
	bonus := AbilityModifier(c.AbilityScores.Get(skill.Ability()))
	for _, s := range c.Skills {
		if s == skill {
			return bonus + ProficiencyBonus(c.ChallengeRating)
		}
	}
	return bonus
}
