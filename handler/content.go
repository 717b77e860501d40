package handler

import (
	"log"
	"net/http"

	"activity-service/model"

	"github.com/gin-gonic/gin"
)

// Compiled-in portfolio content, served as JSON so the site stays
// config-driven without any storage behind it.

var profile = model.Profile{
	Name:         "Aashir Javed",
	GitHubUser:   "Aaxhirrr",
	LeetCodeUser: "Aaxhirrr",
	Email:        "anola133@asu.edu",
	Links: []model.Link{
		{Label: "GitHub", Href: "https://github.com/Aaxhirrr"},
		{Label: "LinkedIn", Href: "https://www.linkedin.com/in/aashir-javed-aj28"},
	},
}

var projects = []model.Project{
	{
		ID:      "t5-neuromem",
		Title:   "T5-NeuroMem — Memory-Aware T5 Service",
		Range:   "Aug 2025 – Present",
		Status:  "Ongoing",
		Summary: "A T5 that remembers: BigQuery vector retrieval + PageRank rerank, answers with citations, served via FastAPI on Cloud Run / Vertex.",
		Tags:    []string{"T5-LoRA", "FastAPI", "BigQuery Vector", "PageRank", "GCP", "Vertex AI"},
		Links:   []model.Link{{Label: "GitHub", Href: "https://github.com/Aaxhirrr/t5-neuromem"}},
	},
	{
		ID:      "data-den",
		Title:   "Data Den — GPU Learning Workspace",
		Range:   "Jun 2025",
		Summary: "LLM-powered GPU tutoring on ASU's Sol cluster: RAPIDS/cuDF, CuPy and SLURM with a LangGraph RAG agent guiding optimizations. 3rd place, NVIDIA x ASU AI Spark.",
		Tags:    []string{"RAPIDS/cuDF", "CuPy", "SLURM", "Gradio", "LangGraph", "RAG", "Ollama"},
		Links:   []model.Link{{Label: "GitHub", Href: "https://github.com/Aaxhirrr/data-den"}},
	},
	{
		ID:      "breathe-pulse-ai",
		Title:   "BreathePulseAI — Emotion-Aware Microbreak Coach",
		Range:   "Apr 2025",
		Summary: "Privacy-first CV (MediaPipe) tracks facial biomarkers and a lightweight RL engine recommends the most effective microbreak. FastAPI + React + Firebase.",
		Tags:    []string{"MediaPipe", "RL (Q-learning/MAB)", "FastAPI", "React/TS", "Firebase"},
		Links:   []model.Link{{Label: "GitHub", Href: "https://github.com/Aaxhirrr/breathe-pulse"}},
	},
	{
		ID:      "disaster-rag",
		Title:   "Disaster Response AI — RAG Chatbot",
		Range:   "Oct 2024 – Jan 2025",
		Summary: "LangChain + FastAPI RAG (FAISS, TF-IDF, GPT-4) over NASA/FEMA/NOAA feeds; finds nearby shelters in under 500ms.",
		Tags:    []string{"Python", "FastAPI", "LangChain", "RAG", "FAISS"},
	},
	{
		ID:      "heart-disease-classification",
		Title:   "Heart Disease Classification",
		Summary: "End-to-end ML pipeline for tabular heart-disease risk prediction with clean EDA, feature engineering, and model selection.",
		Tags:    []string{"Python", "scikit-learn", "Classification", "EDA"},
		Links:   []model.Link{{Label: "Repo", Href: "https://github.com/Aaxhirrr/Heart-Disease-Classification"}},
	},
}

var experiences = []model.Experience{
	{
		Title:   "Software Engineering Intern — Generative AI Division",
		Company: "Sedai",
		Range:   "Aug 2025 – Present · Remote",
		Summary: "Contributing to GenAI infra & internal tools for LLM inference; collaborating with VP Eng on prod-grade ML apps.",
		Bullets: []string{"Model inference optimization", "AI tooling for reliability/telemetry"},
	},
	{
		Title:   "Undergraduate ML Research",
		Company: "Ira A. Fulton Schools of Engineering, ASU",
		Range:   "May 2025 – Aug 2025 · Tempe, AZ",
		Summary: "Applied LLM pipelines to biomedical corpora for Alzheimer's; knowledge-graph extraction + Neo4j on GCP.",
		Bullets: []string{"RAG over PubMed", "364+ unique relations extracted", "Neo4j x AuraDB"},
		Links:   []model.Link{{Label: "GitHub", Href: "https://github.com/Aaxhirrr/APOE4-Amyloid-Knowledge-Graph"}},
	},
	{
		Title:   "Beta Contributor — CreateAI Lab",
		Company: "Arizona State University",
		Range:   "Jun 2025 – Present · Tempe, AZ",
		Summary: "Evaluated 30+ models for ASU tooling; prompt refinement and responsible deployment studies.",
		Bullets: []string{"Benchmarks for cost/quality/latency", "Prompt patterns & eval harness"},
	},
	{
		Title:   "Mathematics Assistant & Grader",
		Company: "Arizona State University",
		Range:   "Fall 2024 – Present · On-site",
		Summary: "Assisted instruction & grading; supported students across statistics/linear algebra.",
	},
	{
		Title:   "Software Lead — Safety Escort System",
		Company: "EPICS @ ASU",
		Range:   "Aug 2024 – May 2025 · On-site",
		Summary: "Led LiDAR-based SLAM safety-escort: planning, benchmarking, stakeholder reviews; ~20% mapping improvement.",
		Bullets: []string{"A*/Dijkstra planning with real-time sensors", "Team coordination & stress testing"},
		Links:   []model.Link{{Label: "GitHub", Href: "https://github.com/Aaxhirrr/safety-escort-app"}},
	},
}

func GetProjects(c *gin.Context) {
	log.Printf("[INFO] GetProjects called")
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func GetExperience(c *gin.Context) {
	log.Printf("[INFO] GetExperience called")
	c.JSON(http.StatusOK, gin.H{"experience": experiences})
}

func GetProfile(c *gin.Context) {
	log.Printf("[INFO] GetProfile called")
	c.JSON(http.StatusOK, profile)
}
