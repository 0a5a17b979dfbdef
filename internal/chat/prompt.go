package chat

// summaryPrefix labels the single system message that replaces a compressed
// history.
const summaryPrefix = "Summary of prior conversation: "

const answerSystemPrompt = `You are a rigorous paper Q&A assistant. You must answer the latest user question strictly from the provided paper context and the summary of our prior conversation. If the context does not cover the question, reason it out yourself and prefix your answer with: "The provided paper content does not answer this question. Based on my own understanding, "`

const compressSystemPrompt = `You are a conversation summarizer. Your task is to compress a multi-turn dialogue into one short summary that preserves every key fact, question, and conclusion. The summary will serve as context memory for the next turn of the conversation.`
