package summary

const analystSystemPrompt = `You are a professional research analyst in the AI field. You will receive the pre-processed content of an academic paper. Your task is to analyze and interpret this paper thoroughly, comprehensively and in a structured way.`

const analysisPrompt = `Based on the paper content provided below, produce a detailed analysis report. The report must follow this exact structure, answering each part in depth:

1.  **Basic Information**: What is the paper's title? Who are the authors?
2.  **Paper Structure**: Briefly describe how the paper is organized (e.g. introduction, related work, method, experiments, conclusion).
3.  **Literature Review**: Find and summarize the section that reviews prior research (usually titled "Related Work"). List each major research direction, key model or representative work mentioned there, with a short explanation.
4.  **Problem Statement**: What core scientific problem or technical challenge does this paper set out to solve?
5.  **Methodology**: What distinctive solution, key method, model architecture or algorithm do the authors propose for that problem?
6.  **Key Formulas**: Explain the more important formulas, their underlying principle and their role in the paper. (If there are no explicit formulas, state "the paper provides no explicit mathematical formulas".)
7.  **Key Findings & Results**: What are the most important conclusions or results from the experiments?
8.  **Value & Contribution**: What are the main contributions and academic value of this work? What advantages does it have over related work?
9.  **Critical Analysis & Outlook**:
    *   Now act as a senior reviewer in this field.
    *   Go beyond the paper's own claims and, drawing on your broader knowledge, evaluate the work critically along these lines:
        *   **Innovation**: How novel is the core idea?
        *   **Potential Impact**: What long-term influence could it have on academia or industry?
        *   **Technical Limitations**: What potential weaknesses or limitations exist in the method or experiments?
        *   **Future Work**: Which follow-up research directions are worth exploring?`
