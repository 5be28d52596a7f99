// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assist

import (
	"fmt"
	"strconv"
	"strings"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
)

// randomKeywordsPrompt asks for five unrelated creative keywords.
const randomKeywordsPrompt = `창의적인 아이디어 구상에 도움이 될 만한 흥미롭거나 독특한 랜덤 키워드 5개를 쉼표로 구분하여 한국어로 알려줘.
다양한 주제를 포괄하고, 서로 연관성이 낮아도 괜찮으니, 상상력을 자극할 수 있는 단어들로 구성해줘.
예시: 우주 고양이, 시간 여행자, 비밀 정원, 노래하는 로봇, 투명 물약.
다른 설명 없이 키워드 목록만 제공해야해. 오직 쉼표로 구분된 키워드 목록만 응답해줘.`

// quoteIDs renders registry ids as a JSON-ish list body: "a", "b", "c".
func quoteIDs[T ~string](ids []T) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = strconv.Quote(string(id))
	}
	return strings.Join(quoted, ", ")
}

// skeletonDefaults returns the project type and category shown in the
// example JSON: the current values, or the first application defaults.
func skeletonDefaults(current models.IdeaData) (options.ProjectType, options.Category) {
	pt := current.ProjectType
	if pt == "" {
		pt = options.ProjectTypeApp
	}
	cat := current.Category
	if cat == "" {
		cat = options.CategoryProductivity
		if pt == options.ProjectTypeGame {
			cat = options.CategoryPuzzle
		}
	}
	return pt, cat
}

func orDefault[T ~string](v T, fallback string) string {
	if v == "" {
		return fallback
	}
	return string(v)
}

// jsonSkeleton is the example object both wizards ask the model to fill.
// withName adds the projectName field and its rationale.
func jsonSkeleton(current models.IdeaData, withName bool) string {
	pt, cat := skeletonDefaults(current)

	var b strings.Builder
	b.WriteString("{\n")
	if withName {
		b.WriteString(`  "projectName": "생성된 프로젝트 이름",` + "\n")
	}
	fmt.Fprintf(&b, "  \"projectType\": %q,\n", pt)
	fmt.Fprintf(&b, "  \"category\": %q,\n", cat)
	b.WriteString(`  "summary": "프로젝트 요약",
  "selectedStandardFeatures": ["login", "database"],
  "customFeatures": "독특한 기능 아이디어",
  "targetAudience": "주요 타겟 사용자",
`)
	fmt.Fprintf(&b, "  \"techStack\": {\n    \"language\": %q,\n    \"framework\": %q,\n    \"platform\": %q\n  },\n",
		options.LanguageJavaScript, options.FrameworkReact, options.PlatformWeb)
	fmt.Fprintf(&b, "  \"useGoogleSearchGrounding\": %t,\n", current.UseGoogleSearchGrounding)
	b.WriteString("  \"rationales\": {\n")
	if withName {
		b.WriteString(`    "projectName": "프로젝트 이름 제안 이유",` + "\n")
	}
	b.WriteString(`    "projectType": "프로젝트 유형 선택 이유",
    "category": "카테고리 선택 이유",
    "summary": "요약 제안 이유",
    "selectedStandardFeatures": "표준 기능 선택 이유",
    "customFeatures": "사용자 정의 기능 제안 이유",
    "targetAudience": "타겟 사용자 제안 이유",
    "techStack_language": "언어 선택 이유",
    "techStack_framework": "프레임워크 선택 이유",
    "techStack_platform": "플랫폼 선택 이유",
    "useGoogleSearchGrounding": "최신 정보 반영(Google Search) 옵션 선택/해제 이유"
  }
}`)
	return b.String()
}

// keywordWizardPrompt builds the request that turns free keywords into a
// complete idea. Every closed set is spelled out so the answer can be
// validated member by member.
func keywordWizardPrompt(keywords string, current models.IdeaData) string {
	lines := []string{
		fmt.Sprintf("주어진 키워드 %q를 창의적으로 조합하여, 다음 JSON 구조에 맞춰 프로젝트 아이디어를 구체화해주세요.", keywords),
		"모든 필드를 채워주고, 각 제안에 대한 간단한 '이유(rationale)'도 함께 제공해주세요. 응답은 반드시 한국어로 작성된 JSON 형식이어야 합니다.",
		"",
		"JSON 구조:",
		jsonSkeleton(current, true),
		"",
		"지침:",
		`- "projectName": 키워드 기반 창의적 이름. "rationales.projectName": 이름 선정 배경 설명.`,
		fmt.Sprintf(`- "projectType": [%s] 중 최적 선택. "rationales.projectType": 선택 근거. (현재: %s)`,
			quoteIDs(options.IDs(options.ProjectTypes)), orDefault(current.ProjectType, "자동")),
		fmt.Sprintf(`- "category": projectType에 따라 [%s] 또는 [%s] 중 선택. "rationales.category": 선택 근거. (현재: %s)`,
			quoteIDs(options.IDs(options.AppCategories)), quoteIDs(options.IDs(options.GameCategories)), orDefault(current.Category, "자동")),
		`- "summary": 키워드 기반 요약. "rationales.summary": 요약 내용 설명.`,
		fmt.Sprintf(`- "selectedStandardFeatures": [%s] 중 0~3개. "rationales.selectedStandardFeatures": 기능들 선택 이유.`,
			quoteIDs(options.FeatureKeys())),
		`- "customFeatures": 독창적 기능 또는 빈 문자열. "rationales.customFeatures": 기능 아이디어 설명.`,
		`- "targetAudience": 간결한 타겟 사용자. "rationales.targetAudience": 타겟 설정 이유.`,
		fmt.Sprintf(`- "techStack.language": [%s, null] 중 선택. "rationales.techStack_language": 선택 이유.`,
			quoteIDs(options.IDs(options.Languages))),
		fmt.Sprintf(`- "techStack.framework": [%s, null] 중 선택. "rationales.techStack_framework": 선택 이유.`,
			quoteIDs(options.IDs(options.Frameworks))),
		fmt.Sprintf(`- "techStack.platform": [%s, null] 중 선택. "rationales.techStack_platform": 선택 이유.`,
			quoteIDs(options.IDs(options.Platforms))),
		`- "useGoogleSearchGrounding": true 또는 false. "rationales.useGoogleSearchGrounding": 해당 값 제안 이유.`,
		"- 모든 텍스트는 한국어. 순수 JSON 객체로만 응답.",
	}
	return strings.Join(lines, "\n")
}

// nameWizardPrompt builds the request that fills an idea around a fixed
// project name.
func nameWizardPrompt(current models.IdeaData) string {
	lines := []string{
		fmt.Sprintf("프로젝트 이름 %q을 기반으로 다음 항목들에 대한 아이디어를 한국어로 제안해줘.", strings.TrimSpace(current.ProjectName)),
		"각 제안에 대한 간단한 '이유(rationale)'도 함께 제공해주세요. 응답은 반드시 JSON 형식이어야 해.",
		"",
		"JSON 구조:",
		jsonSkeleton(current, false),
		"",
		"지침: projectName은 고정이며 응답에 포함하지 않는다.",
		fmt.Sprintf(`- "projectType": [%s] 중 현재 값(%s) 유지 또는 이름에 더 적합하면 변경. "rationales.projectType": 선택/유지 근거.`,
			quoteIDs(options.IDs(options.ProjectTypes)), orDefault(current.ProjectType, "미설정")),
		fmt.Sprintf(`- "category": projectType에 따라 [%s] 또는 [%s] 중 선택.`,
			quoteIDs(options.IDs(options.AppCategories)), quoteIDs(options.IDs(options.GameCategories))),
		fmt.Sprintf(`- "selectedStandardFeatures": [%s] 중 0~3개.`, quoteIDs(options.FeatureKeys())),
		fmt.Sprintf(`- "techStack.language": [%s, null] 중 선택.`, quoteIDs(options.IDs(options.Languages))),
		fmt.Sprintf(`- "techStack.framework": [%s, null] 중 선택.`, quoteIDs(options.IDs(options.Frameworks))),
		fmt.Sprintf(`- "techStack.platform": [%s, null] 중 선택.`, quoteIDs(options.IDs(options.Platforms))),
		`- "useGoogleSearchGrounding": true 또는 false. "rationales.useGoogleSearchGrounding": 해당 값 제안 이유.`,
		"- 기타 필드 및 rationales: 프로젝트 이름에 맞춰 창의적으로 제안 및 설명.",
		"- 모든 텍스트는 한국어. 순수 JSON 객체로만 응답.",
	}
	return strings.Join(lines, "\n")
}

// relatedKeywordsPrompt asks for a new keyword list whose closeness to the
// source keywords follows relatedness (0 random, 1 very close).
func relatedKeywordsPrompt(keywords string, relatedness float64) string {
	lines := []string{
		fmt.Sprintf("주어진 원본 키워드 '%s'를 바탕으로 새로운 키워드 목록을 생성해주세요.", keywords),
		fmt.Sprintf("'연관도' 점수는 %s입니다.", FormatRelatedness(relatedness)),
		"(0은 원본 키워드와 거의 또는 전혀 관련 없는 창의적이고 무작위적인 키워드를 의미하고, 0.5는 어느 정도 연관성이 있으면서도 새로운 아이디어를 탐색할 수 있는 키워드를, 1은 원본 키워드와 매우 밀접하게 관련된 키워드를 의미합니다.)",
		"이 연관도 점수를 참고하여 생성되는 키워드의 성격을 조절해주세요.",
		"생성되는 키워드는 한국어로 작성되어야 합니다.",
		"최종 결과는 쉼표로 구분된 키워드 목록(예: 키워드1, 새로운 키워드2, 키워드 아이디어3) 형태의 문자열로만 응답해야 합니다.",
		"다른 설명이나 앞뒤 텍스트 없이 키워드 목록만 제공해주세요.",
	}
	return strings.Join(lines, "\n")
}

// refinePrompt wraps an existing prompt and an instruction so the model
// answers with the rewritten prompt only.
func refinePrompt(promptText, instruction string) string {
	return "You are a helpful AI assistant. The user provides an 'Original Prompt' and an 'Instruction' to refine it. " +
		"Your task is to apply the instruction to the original prompt and output *only* the new, refined prompt text. " +
		"Do not include any conversational phrases, introductions, or markdown formatting like ``` or ```text around the prompt.\n\n" +
		"Original Prompt:\n```\n" + promptText + "\n```\n\n" +
		"Instruction:\n```\n" + instruction + "\n```\n\n" +
		"Refined Prompt:"
}
