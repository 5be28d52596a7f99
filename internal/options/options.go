// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package options holds the closed option registries used by the idea form,
// the suggestion validator and the prompt generator. Registries are ordered
// slices so display order is preserved. IDs are persisted and used as
// generation keys; only labels may change between versions.
package options

// ProjectType selects between the application and game flows.
type ProjectType string

const (
	ProjectTypeApp  ProjectType = "Application"
	ProjectTypeGame ProjectType = "Game"
)

// Category is a member of either the app or the game category set.
type Category string

const (
	CategoryProductivity Category = "Productivity"
	CategoryEducation    Category = "Education"
	CategoryUtility      Category = "Utility"
	CategorySocial       Category = "Social"
	CategoryLifestyle    Category = "Lifestyle"
	CategoryPuzzle       Category = "Puzzle"
	CategoryRPG          Category = "RPG"
	CategorySimulation   Category = "Simulation"
	CategoryArcade       Category = "Arcade"
	CategoryStrategy     Category = "Strategy"
	CategoryOther        Category = "Other"
)

// Language is a preferred implementation language.
type Language string

const (
	LanguageJavaScript Language = "JavaScript"
	LanguagePython     Language = "Python"
	LanguageSwift      Language = "Swift"
	LanguageKotlin     Language = "Kotlin"
	LanguageJava       Language = "Java"
	LanguageCSharp     Language = "C#"
	LanguageGo         Language = "Go"
	LanguageTypeScript Language = "TypeScript"
	LanguageOther      Language = "Other"
)

// Framework is a preferred framework or library.
type Framework string

const (
	FrameworkReact       Framework = "React"
	FrameworkVue         Framework = "Vue"
	FrameworkAngular     Framework = "Angular"
	FrameworkSvelte      Framework = "Svelte"
	FrameworkNextJS      Framework = "Next.js"
	FrameworkReactNative Framework = "React Native"
	FrameworkFlutter     Framework = "Flutter"
	FrameworkDjango      Framework = "Django"
	FrameworkFlask       Framework = "Flask"
	FrameworkSpring      Framework = "Spring Boot"
	FrameworkNodeJS      Framework = "Node.js/Express"
	FrameworkOther       Framework = "Other"
)

// Platform is the deployment target.
type Platform string

const (
	PlatformWeb     Platform = "Web"
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
	PlatformDesktop Platform = "Desktop (Windows, macOS, Linux)"
	PlatformOther   Platform = "Other"
)

// Tone is the preferred tone of the downstream model's answer.
type Tone string

const (
	ToneFormal       Tone = "Formal"
	ToneCasual       Tone = "Casual"
	ToneTechnical    Tone = "Technical"
	ToneEnthusiastic Tone = "Enthusiastic"
	ToneHumorous     Tone = "Humorous"
)

// Style is the preferred answer structure.
type Style string

const (
	StyleConcise       Style = "Concise"
	StyleDetailed      Style = "Detailed"
	StyleStepByStep    Style = "StepByStep"
	StyleCreative      Style = "Creative"
	StyleInstructional Style = "Instructional"
)

// FeatureKey identifies a standard feature.
type FeatureKey string

const (
	FeatureLogin    FeatureKey = "login"
	FeatureDatabase FeatureKey = "database"
	FeaturePush     FeatureKey = "push"
	FeatureGPS      FeatureKey = "gps"
	FeaturePayment  FeatureKey = "payment"
)

// Option is one registry entry.
type Option[T ~string] struct {
	ID    T      `json:"id"`
	Label string `json:"label"`
}

// DescribedOption is a registry entry that also carries a sentence the
// generator appends to the response style section.
type DescribedOption[T ~string] struct {
	ID          T      `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Feature is a standard feature entry with the fragment rendered into prompts.
type Feature struct {
	ID         FeatureKey `json:"id"`
	Label      string     `json:"label"`
	PromptText string     `json:"promptText"`
}

var ProjectTypes = []Option[ProjectType]{
	{ID: ProjectTypeApp, Label: "애플리케이션"},
	{ID: ProjectTypeGame, Label: "게임"},
}

var AppCategories = []Option[Category]{
	{ID: CategoryProductivity, Label: "생산성"},
	{ID: CategoryEducation, Label: "교육"},
	{ID: CategoryUtility, Label: "유틸리티"},
	{ID: CategorySocial, Label: "소셜"},
	{ID: CategoryLifestyle, Label: "라이프스타일"},
	{ID: CategoryOther, Label: "기타"},
}

var GameCategories = []Option[Category]{
	{ID: CategoryPuzzle, Label: "퍼즐"},
	{ID: CategoryRPG, Label: "RPG"},
	{ID: CategorySimulation, Label: "시뮬레이션"},
	{ID: CategoryArcade, Label: "아케이드"},
	{ID: CategoryStrategy, Label: "전략"},
	{ID: CategoryOther, Label: "기타"},
}

var Languages = []Option[Language]{
	{ID: LanguageJavaScript, Label: "JavaScript"},
	{ID: LanguagePython, Label: "Python"},
	{ID: LanguageSwift, Label: "Swift"},
	{ID: LanguageKotlin, Label: "Kotlin"},
	{ID: LanguageJava, Label: "Java"},
	{ID: LanguageCSharp, Label: "C#"},
	{ID: LanguageGo, Label: "Go"},
	{ID: LanguageTypeScript, Label: "TypeScript"},
	{ID: LanguageOther, Label: "기타"},
}

var Frameworks = []Option[Framework]{
	{ID: FrameworkReact, Label: "React"},
	{ID: FrameworkVue, Label: "Vue"},
	{ID: FrameworkAngular, Label: "Angular"},
	{ID: FrameworkSvelte, Label: "Svelte"},
	{ID: FrameworkNextJS, Label: "Next.js"},
	{ID: FrameworkReactNative, Label: "React Native"},
	{ID: FrameworkFlutter, Label: "Flutter"},
	{ID: FrameworkDjango, Label: "Django"},
	{ID: FrameworkFlask, Label: "Flask"},
	{ID: FrameworkSpring, Label: "Spring Boot"},
	{ID: FrameworkNodeJS, Label: "Node.js/Express"},
	{ID: FrameworkOther, Label: "기타"},
}

var Platforms = []Option[Platform]{
	{ID: PlatformWeb, Label: "웹"},
	{ID: PlatformIOS, Label: "iOS"},
	{ID: PlatformAndroid, Label: "Android"},
	{ID: PlatformDesktop, Label: "데스크톱 (Windows, macOS, Linux)"},
	{ID: PlatformOther, Label: "기타"},
}

var Tones = []DescribedOption[Tone]{
	{ID: ToneFormal, Label: "격식 있는", Description: "전문적이고 정중한 문체로 작성해주세요."},
	{ID: ToneCasual, Label: "친근한", Description: "편안하고 대화하듯 자연스러운 문체로 작성해주세요."},
	{ID: ToneTechnical, Label: "기술적인", Description: "정확한 기술 용어를 사용하여 엔지니어 관점에서 작성해주세요."},
	{ID: ToneEnthusiastic, Label: "열정적인", Description: "활기차고 긍정적인 에너지가 느껴지도록 작성해주세요."},
	{ID: ToneHumorous, Label: "유머러스한", Description: "적절한 유머를 곁들여 가볍고 재미있게 작성해주세요."},
}

var Styles = []DescribedOption[Style]{
	{ID: StyleConcise, Label: "간결한", Description: "핵심만 짧고 명확하게 정리해주세요."},
	{ID: StyleDetailed, Label: "상세한", Description: "배경과 근거를 포함하여 충분히 자세하게 설명해주세요."},
	{ID: StyleStepByStep, Label: "단계별", Description: "작업 순서를 번호가 매겨진 단계로 나누어 설명해주세요."},
	{ID: StyleCreative, Label: "창의적인", Description: "새롭고 독창적인 아이디어와 대안을 적극적으로 제시해주세요."},
	{ID: StyleInstructional, Label: "교육적인", Description: "초보자도 따라 할 수 있도록 개념과 이유를 함께 설명해주세요."},
}

var StandardFeatures = []Feature{
	{
		ID:         FeatureLogin,
		Label:      "사용자 로그인/회원가입 (소셜 로그인 포함)",
		PromptText: "회원가입, 로그인, 비밀번호 복구를 포함한 사용자 인증 시스템. 선택적으로 소셜 로그인 기능(예: 구글, 페이스북)을 포함합니다.",
	},
	{
		ID:         FeatureDatabase,
		Label:      "데이터베이스 연동",
		PromptText: "데이터 영속성을 위한 데이터베이스 연동 (예: 사용자 프로필, 애플리케이션 데이터, 콘텐츠). 선호하는 데이터베이스 유형(예: SQL, NoSQL)이 있다면 명시해주세요.",
	},
	{
		ID:         FeaturePush,
		Label:      "푸시 알림 기능",
		PromptText: "시기적절한 업데이트나 알림으로 사용자의 참여를 유도하는 푸시 알림 기능입니다.",
	},
	{
		ID:         FeatureGPS,
		Label:      "위치 기반 서비스 (GPS)",
		PromptText: "지도, 지역 콘텐츠 추천, 추적 등 위치 기반 기능을 위한 GPS 활용입니다.",
	},
	{
		ID:         FeaturePayment,
		Label:      "결제 시스템 연동",
		PromptText: "인앱 구매, 구독 또는 거래를 위한 결제 게이트웨이 연동입니다.",
	},
}
