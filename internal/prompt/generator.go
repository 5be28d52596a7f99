// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt renders an idea into the long-form prompt text handed to a
// downstream generative model. Generation is a pure function: the same idea
// always produces the same text.
package prompt

import (
	"fmt"
	"strings"

	"promptwizard/internal/models"
	"promptwizard/internal/options"
)

// Fixed fallback literals. Downstream model behaviour is sensitive to this
// wording, so these are part of the output contract.
const (
	FallbackProjectName  = "제목 없음"
	FallbackTypeLabel    = "프로젝트"
	FallbackNotSpecified = "명시되지 않음."
	FallbackNoFeatures   = "특별히 명시된 기능 없음."
	FallbackNoTechStack  = "특정 기술 스택 선호도가 제공되지 않았습니다. 요청된 결과물에 적합하다면 적절한 스택을 제안해주세요."
	FallbackNoToneStyle  = "- 특별히 선호하는 어조나 스타일이 지정되지 않았습니다. 일반적인 기술 문서 스타일로 작성해주세요."
	ClosingInstruction   = "단계별로 생각하고 포괄적인 답변을 제공해주세요."

	OverviewHeader  = "### **[프로젝트 개요]**"
	FeaturesHeader  = "### **[핵심 기능 요구사항]**"
	TechStackHeader = "### **[기술 스택]**"
	GroundingHeader = "### **[중요: 최신 정보 반영을 위한 Google Search 활용 지침]**"
	DeliveryHeader  = "### **[요청 사항: 전체 애플리케이션 프로토타입 생성]**"
	StyleHeader     = "### **[응답 스타일 및 어조]**"
)

// Generate renders idea into prompt text. Sections are joined with a blank
// line and the result is trimmed. Unknown feature keys and enum values that
// are not registry members are ignored rather than rendered, as is a
// category outside the project type's set.
func Generate(idea models.IdeaData) string {
	idea = knownOptions(idea)

	sections := []string{
		preamble(idea),
		overview(idea),
	}
	if idea.ProjectImage != nil {
		sections = append(sections, imageNote(idea.ProjectImage))
	}
	sections = append(sections, features(idea), techStack(idea.TechStack))
	if idea.UseGoogleSearchGrounding {
		sections = append(sections, groundingBlock)
	}
	sections = append(sections, deliverable(idea.TechStack))
	if idea.ProjectImage != nil {
		sections = append(sections, multimodalNote(idea.ProjectImage))
	}
	sections = append(sections, responseStyle(idea), ClosingInstruction)

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// knownOptions clears every enum field of idea that is not a member of its
// registry, so the text only ever names registered options.
func knownOptions(idea models.IdeaData) models.IdeaData {
	if !options.Has(options.ProjectTypes, idea.ProjectType) {
		idea.ProjectType = ""
	}
	if !options.Has(options.CategoriesFor(idea.ProjectType), idea.Category) {
		idea.Category = ""
	}
	if !options.Has(options.Languages, idea.TechStack.Language) {
		idea.TechStack.Language = ""
	}
	if !options.Has(options.Frameworks, idea.TechStack.Framework) {
		idea.TechStack.Framework = ""
	}
	if !options.Has(options.Platforms, idea.TechStack.Platform) {
		idea.TechStack.Platform = ""
	}
	if !options.HasDescribed(options.Tones, idea.PromptTone) {
		idea.PromptTone = ""
	}
	if !options.HasDescribed(options.Styles, idea.PromptStyle) {
		idea.PromptStyle = ""
	}
	return idea
}

// typeLabel is the lowercased project-type label, or the generic fallback.
func typeLabel(pt options.ProjectType) string {
	if l := options.ProjectTypeLabel(pt); l != "" {
		return strings.ToLower(l)
	}
	return FallbackTypeLabel
}

func preamble(idea models.IdeaData) string {
	label := typeLabel(idea.ProjectType)
	role := label + " 전문 기획자"
	if idea.ProjectType == options.ProjectTypeGame {
		role = "게임 기획자"
	}

	var target strings.Builder
	if fw := idea.TechStack.Framework; fw != "" {
		target.WriteString(string(fw) + "와(과) ")
	}
	if lang := idea.TechStack.Language; lang != "" {
		target.WriteString(string(lang) + "를 사용한 ")
	}
	if p := idea.TechStack.Platform; p != "" {
		target.WriteString(string(p) + " ")
	}
	target.WriteString(label)

	return fmt.Sprintf("너는 이제부터 10년차 시니어 풀스택 개발자이자 %s로서 행동해야 해. 내가 제시하는 요구사항에 맞춰 %s 프로토타입을 만들어줘.",
		role, target.String())
}

func overview(idea models.IdeaData) string {
	nameLabel := "앱"
	if idea.ProjectType == options.ProjectTypeGame {
		nameLabel = "게임"
	}

	lines := []string{
		OverviewHeader,
		"",
		fmt.Sprintf("- **%s 이름:** %s", nameLabel, orDefault(idea.ProjectName, FallbackProjectName)),
		"- **프로젝트 유형:** " + typeLabel(idea.ProjectType),
	}
	if idea.Category != "" {
		lines = append(lines, "- **카테고리:** "+string(idea.Category))
	}
	lines = append(lines,
		"- **핵심 컨셉/목표:** "+orDefault(idea.Summary, FallbackNotSpecified),
		"- **주요 타겟 사용자:** "+orDefault(idea.TargetAudience, FallbackNotSpecified),
	)
	return strings.Join(lines, "\n")
}

func imageNote(img *models.ProjectImage) string {
	return "- **참고 이미지:** 사용자가 이미지를 제공했습니다. 이 이미지는 아이디어 구상에 영감을 주기 위한 것으로, 요청 시 이미지 데이터와 함께 전달될 것입니다. 이미지의 내용, 스타일, 분위기 등을 고려하여 응답을 생성해주세요. (이미지 파일명: " + img.Name + ")"
}

// features lists selected standard features in registry order, followed by
// the custom feature text.
func features(idea models.IdeaData) string {
	selected := make(map[options.FeatureKey]bool, len(idea.SelectedStandardFeatures))
	for _, k := range idea.SelectedStandardFeatures {
		selected[k] = true
	}

	lines := []string{FeaturesHeader}

	var standard []string
	for _, f := range options.StandardFeatures {
		if selected[f.ID] {
			standard = append(standard, fmt.Sprintf("- **%s:** %s", f.Label, f.PromptText))
		}
	}
	if len(standard) > 0 {
		lines = append(lines, "", "**표준 기능:**")
		lines = append(lines, standard...)
	}

	custom := strings.TrimSpace(idea.CustomFeatures)
	if custom != "" {
		lines = append(lines, "", "**사용자 정의/특정 기능:**", custom)
	}

	if len(standard) == 0 && custom == "" {
		lines = append(lines, FallbackNoFeatures)
	}
	return strings.Join(lines, "\n")
}

func techStack(ts models.TechStack) string {
	if ts.IsEmpty() {
		return TechStackHeader + "\n" + FallbackNoTechStack
	}
	lines := []string{TechStackHeader}
	if ts.Language != "" {
		lines = append(lines, "- **선호 언어:** "+string(ts.Language))
	}
	if ts.Framework != "" {
		lines = append(lines, "- **선호 프레임워크/라이브러리:** "+string(ts.Framework))
	}
	if ts.Platform != "" {
		lines = append(lines, "- **타겟 플랫폼:** "+string(ts.Platform))
	}
	return strings.Join(lines, "\n")
}

// stackLabel names the stack the deliverable should be written in.
func stackLabel(ts models.TechStack) string {
	var label string
	switch {
	case ts.Framework != "":
		label = string(ts.Framework)
	case ts.Language != "":
		label = "선택된 언어 기반"
	default:
		label = "적절한 프레임워크"
	}
	if ts.Language != "" {
		label += " (" + string(ts.Language) + ")"
	}
	return label
}

func deliverable(ts models.TechStack) string {
	return strings.Replace(deliverableTemplate, "{{STACK}}", stackLabel(ts), 1)
}

func multimodalNote(img *models.ProjectImage) string {
	return strings.Replace(multimodalTemplate, "{{MIME}}", img.Type, 1)
}

func responseStyle(idea models.IdeaData) string {
	lines := []string{
		StyleHeader,
		"- 명확하고 간결하며 실행 가능한 정보를 제공해주세요.",
		"- 코드를 생성하는 경우, 모범 사례를 따르고 필요한 경우 주석을 잘 달아주세요.",
		"- 디자인 또는 개념 아이디어의 경우 혁신과 사용자 경험에 중점을 두세요.",
	}

	tone, hasTone := options.FindDescribed(options.Tones, idea.PromptTone)
	style, hasStyle := options.FindDescribed(options.Styles, idea.PromptStyle)
	if hasTone {
		lines = append(lines, fmt.Sprintf("- **선호하는 어조:** %s. %s", tone.Label, tone.Description))
	}
	if hasStyle {
		lines = append(lines, fmt.Sprintf("- **선호하는 스타일:** %s. %s", style.Label, style.Description))
	}
	if !hasTone && !hasStyle {
		lines = append(lines, FallbackNoToneStyle)
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
