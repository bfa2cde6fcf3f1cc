package agent

import "github.com/hupe1980/agentpipe/model"

// Standard roster personas. Each variant is an ordinary ModelAgent with a
// fixed instruction; no variant carries its own control flow.

const researchPersona = `You are a Research Agent specialized in gathering and analyzing information.
Your responsibilities:
- Research topics thoroughly
- Identify key facts and insights
- Provide well-structured summaries
- Cite sources when possible

Be comprehensive but concise in your research.`

const analysisPersona = `You are an Analysis Agent specialized in evaluating and analyzing information.
Your responsibilities:
- Analyze research findings
- Identify patterns and trends
- Evaluate quality and reliability
- Provide critical insights
- Make data-driven recommendations

Be objective and thorough in your analysis.`

const writerPersona = `You are a Writer Agent specialized in creating high-quality content.
Your responsibilities:
- Write clear and engaging content
- Organize information logically
- Adapt tone and style to audience
- Ensure accuracy and clarity
- Create well-structured documents

Be creative but maintain accuracy.`

const criticPersona = `You are a Critic Agent specialized in quality assurance and review.
Your responsibilities:
- Review content for accuracy
- Check for logical consistency
- Identify gaps or weaknesses
- Suggest improvements
- Ensure quality standards

Be constructive and specific in your feedback. When a task asks for an
approval decision, answer strictly in the requested response format.`

// NewResearchAgent constructs the research variant over the given backend.
func NewResearchAgent(llm model.Model) *ModelAgent {
	return NewModelAgent("ResearchAgent", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromText(researchPersona)
	})
}

// NewAnalysisAgent constructs the analysis variant over the given backend.
func NewAnalysisAgent(llm model.Model) *ModelAgent {
	return NewModelAgent("AnalysisAgent", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromText(analysisPersona)
	})
}

// NewWriterAgent constructs the writer variant over the given backend.
func NewWriterAgent(llm model.Model) *ModelAgent {
	return NewModelAgent("WriterAgent", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromText(writerPersona)
	})
}

// NewCriticAgent constructs the critic variant over the given backend. The
// critic also acts as supervisor in the hierarchical workflow, where the
// orchestrator appends the structured decision contract to its review tasks.
func NewCriticAgent(llm model.Model) *ModelAgent {
	return NewModelAgent("CriticAgent", llm, func(o *ModelAgentOptions) {
		o.Instruction = NewInstructionFromText(criticPersona)
	})
}
