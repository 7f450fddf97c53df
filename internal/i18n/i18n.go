package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

var messages = map[string]map[string]string{
	"SESSION_STARTED": {
		"en": "Identification session started successfully",
		"ar": "تم بدء جلسة التعرف بنجاح",
	},
	"SESSION_ENDED": {
		"en": "Session ended successfully",
		"ar": "تم إنهاء الجلسة بنجاح",
	},
	"MEDICINE_IDENTIFIED": {
		"en": "Medicine identified successfully",
		"ar": "تم التعرف على الدواء بنجاح",
	},
	"MEDICINE_NOT_FOUND": {
		"en": "Medicine not found",
		"ar": "الدواء غير موجود",
	},
	"NO_INTERACTIONS_FOUND": {
		"en": "No harmful interactions found. These medicines appear safe to take together.",
		"ar": "لم يتم العثور على تفاعلات ضارة. يبدو أن هذه الأدوية آمنة للتناول معاً.",
	},
	"INTERACTIONS_FOUND": {
		"en": "Potential interactions found. Please review the warnings carefully.",
		"ar": "تم العثور على تفاعلات محتملة. يرجى مراجعة التحذيرات بعناية.",
	},
	"RISK_SAFE":     {"en": "Safe", "ar": "آمن"},
	"RISK_LOW":      {"en": "Low Risk", "ar": "خطر منخفض"},
	"RISK_MODERATE": {"en": "Moderate Risk", "ar": "خطر متوسط"},
	"RISK_HIGH":     {"en": "High Risk", "ar": "خطر عالي"},
	"RISK_CRITICAL": {"en": "Critical - Avoid Combination", "ar": "حرج - تجنب هذا المزيج"},
	"RATE_LIMIT_EXCEEDED": {
		"en": "Too many requests. Please try again later.",
		"ar": "طلبات كثيرة جداً. يرجى المحاولة مرة أخرى لاحقاً.",
	},
}

// Language resolves the request language: ?lang query, X-Language header,
// then Accept-Language, defaulting to English.
func Language(c *gin.Context) string {
	if lang := c.Query("lang"); lang == LangArabic || lang == LangEnglish {
		return lang
	}
	if lang := c.GetHeader("X-Language"); lang == LangArabic || lang == LangEnglish {
		return lang
	}
	if strings.Contains(strings.ToLower(c.GetHeader("Accept-Language")), LangArabic) {
		return LangArabic
	}
	return LangEnglish
}

func T(key, lang string) string {
	entry, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := entry[lang]; ok {
		return msg
	}
	return entry[LangEnglish]
}
