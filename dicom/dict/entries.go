// Copyright 2026 the dcmio authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dict

// entries is the data dictionary table, ordered by tag. Source: DICOM PS3.6.
// Repeating-group tags (50xx, 60xx) are stored with the repeated byte zeroed.
var entries = []Entry{
	// Command set (group 0000), DIMSE. Rarely present in Part 10 files but
	// legal, and written with its own framing when it is.
	{0x00000002, "UI", "Affected SOP Class UID", "AffectedSOPClassUID"},
	{0x00000100, "US", "Command Field", "CommandField"},
	{0x00000110, "US", "Message ID", "MessageID"},
	{0x00000800, "US", "Command Data Set Type", "CommandDataSetType"},
	{0x00001000, "UI", "Affected SOP Instance UID", "AffectedSOPInstanceUID"},

	// File meta (group 0002). Always Explicit VR Little Endian.
	{0x00020001, "OB", "File Meta Information Version", "FileMetaInformationVersion"},
	{0x00020002, "UI", "Media Storage SOP Class UID", "MediaStorageSOPClassUID"},
	{0x00020003, "UI", "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID"},
	{0x00020010, "UI", "Transfer Syntax UID", "TransferSyntaxUID"},
	{0x00020012, "UI", "Implementation Class UID", "ImplementationClassUID"},
	{0x00020013, "SH", "Implementation Version Name", "ImplementationVersionName"},
	{0x00020016, "AE", "Source Application Entity Title", "SourceApplicationEntityTitle"},

	{0x00080005, "CS", "Specific Character Set", "SpecificCharacterSet"},
	{0x00080008, "CS", "Image Type", "ImageType"},
	{0x00080016, "UI", "SOP Class UID", "SOPClassUID"},
	{0x00080018, "UI", "SOP Instance UID", "SOPInstanceUID"},
	{0x00080020, "DA", "Study Date", "StudyDate"},
	{0x00080021, "DA", "Series Date", "SeriesDate"},
	{0x00080030, "TM", "Study Time", "StudyTime"},
	{0x00080050, "SH", "Accession Number", "AccessionNumber"},
	{0x00080060, "CS", "Modality", "Modality"},
	{0x00080070, "LO", "Manufacturer", "Manufacturer"},
	{0x00080080, "LO", "Institution Name", "InstitutionName"},
	{0x00080090, "PN", "Referring Physician's Name", "ReferringPhysicianName"},
	{0x00080100, "SH", "Code Value", "CodeValue"},
	{0x00080102, "SH", "Coding Scheme Designator", "CodingSchemeDesignator"},
	{0x00080104, "LO", "Code Meaning", "CodeMeaning"},
	{0x00081030, "LO", "Study Description", "StudyDescription"},
	{0x00081032, "SQ", "Procedure Code Sequence", "ProcedureCodeSequence"},
	{0x0008103E, "LO", "Series Description", "SeriesDescription"},
	{0x00081110, "SQ", "Referenced Study Sequence", "ReferencedStudySequence"},
	{0x00081115, "SQ", "Referenced Series Sequence", "ReferencedSeriesSequence"},
	{0x00081140, "SQ", "Referenced Image Sequence", "ReferencedImageSequence"},
	{0x00081150, "UI", "Referenced SOP Class UID", "ReferencedSOPClassUID"},
	{0x00081155, "UI", "Referenced SOP Instance UID", "ReferencedSOPInstanceUID"},
	{0x0008212A, "IS", "Number of Views in Stage", "NumberOfViewsInStage"},

	{0x00100010, "PN", "Patient's Name", "PatientName"},
	{0x00100020, "LO", "Patient ID", "PatientID"},
	{0x00100030, "DA", "Patient's Birth Date", "PatientBirthDate"},
	{0x00100040, "CS", "Patient's Sex", "PatientSex"},
	{0x00101010, "AS", "Patient's Age", "PatientAge"},
	{0x00101030, "DS", "Patient's Weight", "PatientWeight"},
	{0x00102160, "SH", "Ethnic Group", "EthnicGroup"},

	{0x00180015, "CS", "Body Part Examined", "BodyPartExamined"},
	{0x00180050, "DS", "Slice Thickness", "SliceThickness"},
	{0x00180060, "DS", "KVP", "KVP"},
	{0x00181020, "LO", "Software Versions", "SoftwareVersions"},
	{0x00181151, "IS", "X-Ray Tube Current", "XRayTubeCurrent"},
	{0x00189810, "US or SS", "Zero Velocity Pixel Value", "ZeroVelocityPixelValue"},

	{0x0020000D, "UI", "Study Instance UID", "StudyInstanceUID"},
	{0x0020000E, "UI", "Series Instance UID", "SeriesInstanceUID"},
	{0x00200010, "SH", "Study ID", "StudyID"},
	{0x00200011, "IS", "Series Number", "SeriesNumber"},
	{0x00200013, "IS", "Instance Number", "InstanceNumber"},
	{0x00200032, "DS", "Image Position (Patient)", "ImagePositionPatient"},
	{0x00200037, "DS", "Image Orientation (Patient)", "ImageOrientationPatient"},
	{0x00200052, "UI", "Frame of Reference UID", "FrameOfReferenceUID"},

	{0x00221452, "US or SS", "Mapped Pixel Value", "MappedPixelValue"},

	{0x00280002, "US", "Samples per Pixel", "SamplesPerPixel"},
	{0x00280004, "CS", "Photometric Interpretation", "PhotometricInterpretation"},
	{0x00280008, "IS", "Number of Frames", "NumberOfFrames"},
	{0x00280010, "US", "Rows", "Rows"},
	{0x00280011, "US", "Columns", "Columns"},
	{0x00280030, "DS", "Pixel Spacing", "PixelSpacing"},
	{0x00280071, "US or SS", "Perimeter Value", "PerimeterValue"},
	{0x00280100, "US", "Bits Allocated", "BitsAllocated"},
	{0x00280101, "US", "Bits Stored", "BitsStored"},
	{0x00280102, "US", "High Bit", "HighBit"},
	{0x00280103, "US", "Pixel Representation", "PixelRepresentation"},
	{0x00280104, "US or SS", "Smallest Valid Pixel Value", "SmallestValidPixelValue"},
	{0x00280105, "US or SS", "Largest Valid Pixel Value", "LargestValidPixelValue"},
	{0x00280106, "US or SS", "Smallest Image Pixel Value", "SmallestImagePixelValue"},
	{0x00280107, "US or SS", "Largest Image Pixel Value", "LargestImagePixelValue"},
	{0x00280108, "US or SS", "Smallest Pixel Value in Series", "SmallestPixelValueInSeries"},
	{0x00280109, "US or SS", "Largest Pixel Value in Series", "LargestPixelValueInSeries"},
	{0x00280110, "US or SS", "Smallest Image Pixel Value in Plane", "SmallestImagePixelValueInPlane"},
	{0x00280111, "US or SS", "Largest Image Pixel Value in Plane", "LargestImagePixelValueInPlane"},
	{0x00280120, "US or SS", "Pixel Padding Value", "PixelPaddingValue"},
	{0x00280121, "US or SS", "Pixel Padding Range Limit", "PixelPaddingRangeLimit"},
	{0x00281050, "DS", "Window Center", "WindowCenter"},
	{0x00281051, "DS", "Window Width", "WindowWidth"},
	{0x00281052, "DS", "Rescale Intercept", "RescaleIntercept"},
	{0x00281053, "DS", "Rescale Slope", "RescaleSlope"},
	{0x00281101, "US or SS", "Red Palette Color Lookup Table Descriptor", "RedPaletteColorLookupTableDescriptor"},
	{0x00281102, "US or SS", "Green Palette Color Lookup Table Descriptor", "GreenPaletteColorLookupTableDescriptor"},
	{0x00281103, "US or SS", "Blue Palette Color Lookup Table Descriptor", "BluePaletteColorLookupTableDescriptor"},
	{0x00281201, "US or OW", "Red Palette Color Lookup Table Data", "RedPaletteColorLookupTableData"},
	{0x00281202, "US or OW", "Green Palette Color Lookup Table Data", "GreenPaletteColorLookupTableData"},
	{0x00281203, "US or OW", "Blue Palette Color Lookup Table Data", "BluePaletteColorLookupTableData"},
	{0x00283002, "US or SS", "LUT Descriptor", "LUTDescriptor"},
	{0x00283003, "LO", "LUT Explanation", "LUTExplanation"},
	{0x00283006, "US or OW", "LUT Data", "LUTData"},
	{0x00283010, "SQ", "VOI LUT Sequence", "VOILUTSequence"},

	{0x00400275, "SQ", "Request Attributes Sequence", "RequestAttributesSequence"},

	{0x00420011, "OB", "Encapsulated Document", "EncapsulatedDocument"},

	{0x54000100, "SQ", "Waveform Sequence", "WaveformSequence"},
	{0x54001004, "US", "Waveform Bits Allocated", "WaveformBitsAllocated"},
	{0x54001006, "CS", "Waveform Sample Interpretation", "WaveformSampleInterpretation"},
	{0x5400100A, "OB or OW", "Waveform Padding Value", "WaveformPaddingValue"},
	{0x54001010, "OB or OW", "Waveform Data", "WaveformData"},

	// Repeating group 60xx, stored as 6000.
	{0x60000010, "US", "Overlay Rows", "OverlayRows"},
	{0x60000011, "US", "Overlay Columns", "OverlayColumns"},
	{0x60000100, "US", "Overlay Bits Allocated", "OverlayBitsAllocated"},
	{0x60003000, "OB or OW", "Overlay Data", "OverlayData"},

	{0x7FE00008, "OF", "Float Pixel Data", "FloatPixelData"},
	{0x7FE00009, "OD", "Double Float Pixel Data", "DoubleFloatPixelData"},
	{0x7FE00010, "OB or OW", "Pixel Data", "PixelData"},
}
