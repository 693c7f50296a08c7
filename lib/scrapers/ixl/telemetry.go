package ixl

import "studyreport/lib/telemetry"

var tracer = telemetry.Tracer("studyreport.lib.scrapers.ixl")
