package models

import "time"

// Translation memoizes one provider call. The (original_text, source_lang,
// target_lang) triple is the cache key; entries are never evicted.
type Translation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OriginalText   string    `gorm:"type:text;not null;index:idx_translation_lookup" json:"original_text"`
	SourceLang     string    `gorm:"size:10;not null;index:idx_translation_lookup" json:"source_lang"`
	TargetLang     string    `gorm:"size:10;not null;index:idx_translation_lookup" json:"target_lang"`
	TranslatedText string    `gorm:"type:text;not null" json:"translated_text"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
